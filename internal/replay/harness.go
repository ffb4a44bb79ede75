// Package replay re-runs recorded games through the candidate filter and
// checks the candidate counts against expectations.
package replay

import (
	"fmt"

	"github.com/danielpatrickdp/wordle-engine/internal/candidates"
	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #region types

// ReplayResult captures one replayed attempt.
type ReplayResult struct {
	Turn       int
	Attempt    wordle.Attempt
	Removed    int
	Remaining  int
	Expected   int // -1 = unchecked
	Match      bool
	Err        error         // set when the attempt was rejected
	Candidates []wordle.Word // kept when Remaining <= ShowCandidates
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalTurns     int
	Matches        int
	Mismatches     int
	Unchecked      int
	Rejected       int
	FinalRemaining int
}

// ShowCandidates is the largest remaining count for which the surviving
// words are kept in a ReplayResult.
const ShowCandidates = 10

// #endregion types

// #region replay

// Replay applies attempts in order to a fresh candidate set over c. An
// attempt whose pattern could never occur is reported and skipped; the
// replay continues with the next one.
func Replay(c *corpus.Corpus, attempts []wordle.Attempt, expected []int) []ReplayResult {
	set := candidates.New(c)
	results := make([]ReplayResult, 0, len(attempts))

	for i, a := range attempts {
		r := ReplayResult{Turn: i + 1, Attempt: a, Expected: -1}
		if i < len(expected) {
			r.Expected = expected[i]
		}

		if err := wordle.ValidatePattern(a.Guess, a.Pattern); err != nil {
			r.Err = err
			r.Remaining = set.Len()
			results = append(results, r)
			continue
		}

		r.Removed = set.Apply(a)
		r.Remaining = set.Len()
		r.Match = r.Expected < 0 || r.Expected == r.Remaining
		if r.Remaining <= ShowCandidates {
			r.Candidates = set.Words()
		}
		results = append(results, r)
	}
	return results
}

// Run replays a fixture, using fallback when it carries no inline corpus.
func Run(f *Fixture, fallback *corpus.Corpus) ([]ReplayResult, error) {
	c, err := f.Corpus(fallback)
	if err != nil {
		return nil, fmt.Errorf("fixture corpus: %w", err)
	}
	attempts, err := f.ToAttempts()
	if err != nil {
		return nil, err
	}
	return Replay(c, attempts, f.Expected()), nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{TotalTurns: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Rejected++
		case r.Expected < 0:
			s.Unchecked++
		case r.Match:
			s.Matches++
		default:
			s.Mismatches++
		}
		s.FinalRemaining = r.Remaining
	}
	return s
}

// Diverged reports whether a summary has any mismatch or rejected attempt.
func (s ReplaySummary) Diverged() bool {
	return s.Mismatches > 0 || s.Rejected > 0
}

// #endregion replay
