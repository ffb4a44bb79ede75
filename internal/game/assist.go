package game

// #region imports
import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #endregion

// #region assist

// Assist suggests guesses for a puzzle played elsewhere. After each
// suggestion it reads the feedback pattern (C/M/I per letter) from r. A
// line of the form "<word> <pattern>" reports a different guess than the
// one suggested. Malformed lines are reported and asked again. Assist
// returns when the feedback is all correct or r is exhausted.
func Assist(r io.Reader, w io.Writer, solver Solver, dict *corpus.Dictionary) (Result, error) {
	in := bufio.NewScanner(r)
	var history []wordle.Attempt
	res := Result{}

	fmt.Fprintln(w, "--------------------------------------------")
	fmt.Fprintln(w, "               Wordle Assistant             ")
	fmt.Fprintln(w, "--------------------------------------------")

	for {
		suggestion, err := solver.Solve(history)
		if err != nil {
			return res, fmt.Errorf("turn %d: %w", len(history)+1, err)
		}
		remaining := -1
		if rem, ok := solver.(remainer); ok {
			remaining = rem.Remaining()
			fmt.Fprintf(w, "My suggestion is '%s' (%d candidates)\n", suggestion, remaining)
		} else {
			fmt.Fprintf(w, "My suggestion is '%s'\n", suggestion)
		}

		var a wordle.Attempt
		for {
			fmt.Fprint(w, "Feedback (C correct, M misplaced, I incorrect): ")
			if !in.Scan() {
				if err := in.Err(); err != nil {
					return res, fmt.Errorf("read feedback: %w", err)
				}
				fmt.Fprintln(w)
				return res, nil
			}
			a, err = parseFeedback(in.Text(), suggestion, dict)
			if err == nil {
				break
			}
			fmt.Fprintf(w, "invalid input: %v\n", err)
		}

		history = append(history, a)
		res.Log = append(res.Log, Turn{Guess: a.Guess, Pattern: a.Pattern, Remaining: remaining})
		res.Turns = len(history)

		if a.Pattern.Solved() {
			res.Answer, res.Solved = a.Guess, true
			fmt.Fprintf(w, "Good game! Solved in %d turns.\n", res.Turns)
			return res, nil
		}
	}
}

func parseFeedback(line string, suggestion wordle.Word, dict *corpus.Dictionary) (wordle.Attempt, error) {
	fields := strings.Fields(line)
	guess := suggestion
	switch len(fields) {
	case 1:
	case 2:
		w, err := wordle.ParseWord(fields[0])
		if err != nil {
			return wordle.Attempt{}, err
		}
		if err := dict.Validate(w); err != nil {
			return wordle.Attempt{}, err
		}
		guess = w
	default:
		return wordle.Attempt{}, fmt.Errorf("expected a pattern or a word and a pattern")
	}
	p, err := wordle.ParsePattern(fields[len(fields)-1])
	if err != nil {
		return wordle.Attempt{}, err
	}
	if err := wordle.ValidatePattern(guess, p); err != nil {
		return wordle.Attempt{}, err
	}
	return wordle.Attempt{Guess: guess, Pattern: p}, nil
}

// #endregion
