package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/wordle-engine/internal/replay"
	"github.com/danielpatrickdp/wordle-engine/internal/store"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// errDiverged makes the process exit 1 after the comparison is printed.
var errDiverged = errors.New("replay diverged")

func newReplayCmd(a *app) *cobra.Command {
	var fixture, dbPath, gameID string
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run recorded attempts and compare candidate counts",
		Long: `Apply the attempts of a fixture (--fixture) or of a recorded game
(--db with --game) to a fresh candidate set, and compare the remaining
count after each attempt with the recorded one.

Exits 1 when any count differs or an attempt is impossible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dict, err := a.dictionary()
			if err != nil {
				return err
			}

			var results []replay.ReplayResult
			switch {
			case fixture != "":
				f, err := replay.LoadFixture(fixture)
				if err != nil {
					return err
				}
				if f.Description != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", f.Description)
				}
				results, err = replay.Run(f, dict.Guesses)
				if err != nil {
					return err
				}
			case gameID != "":
				path, err := a.requireDB(dbPath)
				if err != nil {
					return err
				}
				attempts, expected, err := loadRecordedGame(path, gameID)
				if err != nil {
					return err
				}
				results = replay.Replay(dict.Guesses, attempts, expected)
			default:
				return errors.New("replay needs --fixture or --game")
			}

			if printComparison(cmd.OutOrStdout(), results).Diverged() {
				return errDiverged
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixture, "fixture", "", "path to a JSON or YAML fixture")
	cmd.Flags().StringVar(&dbPath, "db", "", "benchmark database (default store.path)")
	cmd.Flags().StringVar(&gameID, "game", "", "recorded game to replay")
	cmd.MarkFlagsMutuallyExclusive("fixture", "game")
	return cmd
}

// loadRecordedGame turns stored turns into attempts and expected counts.
// The winning turn is dropped since it leaves nothing to filter.
func loadRecordedGame(dbPath, gameID string) ([]wordle.Attempt, []int, error) {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	turns, err := st.GameTurns(gameID)
	if err != nil {
		return nil, nil, err
	}
	if len(turns) == 0 {
		return nil, nil, fmt.Errorf("game %s: %w", gameID, store.ErrNotFound)
	}

	var attempts []wordle.Attempt
	var expected []int
	for _, t := range turns {
		a, err := wordle.NewAttempt(t.Guess, t.Pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("turn %d: %w", t.Turn, err)
		}
		if a.Pattern.Solved() {
			break
		}
		attempts = append(attempts, a)
		expected = append(expected, -1)
	}
	// A recorded count is the candidate set the solver guessed from, i.e.
	// what was left after the previous attempt.
	for i := 1; i < len(turns) && i <= len(expected); i++ {
		expected[i-1] = turns[i].Remaining
	}
	return attempts, expected, nil
}

// #region output

// printComparison outputs a comparison table and returns the summary.
func printComparison(w io.Writer, results []replay.ReplayResult) replay.ReplaySummary {
	fmt.Fprintf(w, "%-4s| %-14s| %-9s| %-9s| %s\n", "Turn", "Attempt", "Expected", "Replayed", "Match")
	fmt.Fprintf(w, "%-4s+%-15s+%-10s+%-10s+%s\n", "----", "---------------", "----------", "----------", "------")

	for _, r := range results {
		exp := "—"
		if r.Expected >= 0 {
			exp = fmt.Sprintf("%d", r.Expected)
		}
		match := "OK"
		switch {
		case r.Err != nil:
			match = "REJECT"
		case r.Expected < 0:
			match = "—"
		case !r.Match:
			match = "DIFF"
		}
		fmt.Fprintf(w, "%-4d| %-14s| %-9s| %-9d| %s\n", r.Turn, r.Attempt, exp, r.Remaining, match)
		if r.Err != nil {
			fmt.Fprintf(w, "    %v\n", r.Err)
		} else if len(r.Candidates) > 0 {
			words := make([]string, len(r.Candidates))
			for i, c := range r.Candidates {
				words[i] = c.String()
			}
			fmt.Fprintf(w, "    left: %s\n", strings.Join(words, " "))
		}
	}

	s := replay.Summarize(results)
	fmt.Fprintf(w, "\nSummary: %d total, %d match, %d diverge, %d rejected, %d unchecked\n",
		s.TotalTurns, s.Matches, s.Mismatches, s.Rejected, s.Unchecked)
	return s
}

// #endregion output
