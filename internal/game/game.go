// Package game drives solvers through puzzles: single games, batch
// simulation and an interactive assistant.
package game

// #region imports
import (
	"errors"
	"fmt"

	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/eval"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #endregion

// #region types

// ErrTurnLimit means the solver did not find the answer within MaxTurns.
var ErrTurnLimit = errors.New("turn limit reached")

// Solver proposes the next guess given the attempts so far.
type Solver interface {
	Solve(history []wordle.Attempt) (wordle.Word, error)
}

// SolverFunc adapts a plain function to Solver.
type SolverFunc func(history []wordle.Attempt) (wordle.Word, error)

// Solve calls f.
func (f SolverFunc) Solve(history []wordle.Attempt) (wordle.Word, error) {
	return f(history)
}

// remainer is implemented by solvers that track their candidate count.
type remainer interface {
	Remaining() int
}

// Options bound a single game.
type Options struct {
	MaxTurns int // 0 = unlimited
}

// Turn is one guess of a game.
type Turn struct {
	Guess     wordle.Word
	Pattern   wordle.Pattern
	Remaining int // candidates when the guess was made; -1 if unknown
}

// Result is a finished or abandoned game.
type Result struct {
	Answer wordle.Word
	Turns  int
	Solved bool
	Log    []Turn
}

// Outcome reduces r to what the benchmark summary needs.
func (r Result) Outcome() eval.Game {
	return eval.Game{Answer: r.Answer, Turns: r.Turns, Solved: r.Solved}
}

// #endregion

// #region play

// Play runs solver against answer until it guesses it. Every guess must be
// in dict. With opts.MaxTurns set, the game stops unsolved after that many
// guesses and the partial result is returned with ErrTurnLimit.
func Play(answer wordle.Word, solver Solver, dict *corpus.Dictionary, opts Options) (Result, error) {
	res := Result{Answer: answer}
	var history []wordle.Attempt

	for {
		if opts.MaxTurns > 0 && len(history) >= opts.MaxTurns {
			res.Turns = len(history)
			return res, fmt.Errorf("%s after %d turns: %w", answer, len(history), ErrTurnLimit)
		}

		guess, err := solver.Solve(history)
		if err != nil {
			return res, fmt.Errorf("%s turn %d: %w", answer, len(history)+1, err)
		}
		if err := dict.Validate(guess); err != nil {
			return res, fmt.Errorf("%s turn %d: %w", answer, len(history)+1, err)
		}

		remaining := -1
		if r, ok := solver.(remainer); ok {
			remaining = r.Remaining()
		}
		pattern := wordle.Color(answer, guess)
		res.Log = append(res.Log, Turn{Guess: guess, Pattern: pattern, Remaining: remaining})

		if guess == answer {
			res.Turns = len(history) + 1
			res.Solved = true
			return res, nil
		}
		history = append(history, wordle.Attempt{Guess: guess, Pattern: pattern})
	}
}

// #endregion
