// Package entropy scores guesses by how evenly they split the remaining
// candidates across feedback patterns.
package entropy

import (
	"cmp"
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/wordle-engine/internal/candidates"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// Record pairs a guess with its score. Higher is better.
type Record struct {
	Word  wordle.Word
	Score float64
}

// ScoreFunc scores one guess against a candidate view.
type ScoreFunc func(w wordle.Word, v candidates.View) float64

// #region scoring

// Partition counts how many candidates of v fall into each feedback
// pattern when w is guessed.
func Partition(w wordle.Word, v candidates.View) [wordle.NumPatterns]int {
	var buckets [wordle.NumPatterns]int
	for i := 0; i < v.Len(); i++ {
		cand, _ := v.At(i)
		buckets[wordle.Color(cand, w).Index()]++
	}
	return buckets
}

// ExpectedInformation is the Shannon entropy in bits of the pattern
// distribution w induces over v, each candidate counted once. It is 0 for
// views of one word or fewer and never exceeds log2(v.Len()).
func ExpectedInformation(w wordle.Word, v candidates.View) float64 {
	n := v.Len()
	if n <= 1 {
		return 0
	}
	buckets := Partition(w, v)
	total := float64(n)
	var bits float64
	for _, count := range buckets {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		bits -= p * math.Log2(p)
	}
	if bits < 0 {
		return 0
	}
	return bits
}

// HybridScore adds the guess's share of the view's total weight to its
// expected information. The two terms are on different scales and are
// summed as is.
func HybridScore(w wordle.Word, v candidates.View) float64 {
	score := ExpectedInformation(w, v)
	if total := v.TotalWeight(); total > 0 {
		score += float64(v.Weight(w)) / float64(total)
	}
	return score
}

// #endregion scoring

// #region ranking

// Rank scores every guess against v with up to workers goroutines and
// returns the records in the order of guesses. workers <= 0 uses
// GOMAXPROCS.
func Rank(v candidates.View, guesses []wordle.Word, fn ScoreFunc, workers int) []Record {
	out := make([]Record, len(guesses))
	if len(guesses) == 0 {
		return out
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(guesses) {
		workers = len(guesses)
	}

	chunk := (len(guesses) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(guesses); start += chunk {
		end := min(start+chunk, len(guesses))
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = Record{Word: guesses[i], Score: fn(guesses[i], v)}
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Sort orders records by ascending score, keeping input order among equal
// scores.
func Sort(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Compare(a.Score, b.Score)
	})
}

// Best returns the record a stable ascending sort would put last: the
// highest score, and among equal scores the one latest in input order.
func Best(records []Record) (Record, bool) {
	if len(records) == 0 {
		return Record{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Score >= best.Score {
			best = r
		}
	}
	return best, true
}

// #endregion ranking
