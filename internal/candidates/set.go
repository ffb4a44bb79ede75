package candidates

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// ErrNoCandidates means the feedback so far rules out every word.
var ErrNoCandidates = errors.New("no consistent candidate")

// #region set

// Set is the pruneable collection of words still possible for one puzzle.
// Membership is a bitset over the indices of a shared, read-only corpus, so
// iteration always follows corpus order.
type Set struct {
	corpus *corpus.Corpus
	alive  *bitset.BitSet
}

// New returns a set holding every word of c.
func New(c *corpus.Corpus) *Set {
	alive := bitset.New(uint(c.Len()))
	for i := 0; i < c.Len(); i++ {
		alive.Set(uint(i))
	}
	return &Set{corpus: c, alive: alive}
}

// FromWords returns a set restricted to words, which must all be in c.
func FromWords(c *corpus.Corpus, words []wordle.Word) (*Set, error) {
	alive := bitset.New(uint(c.Len()))
	for _, w := range words {
		i := c.IndexOf(w)
		if i < 0 {
			return nil, fmt.Errorf("candidate %s: %w", w, corpus.ErrUnknownGuess)
		}
		alive.Set(uint(i))
	}
	return &Set{corpus: c, alive: alive}, nil
}

// Corpus returns the corpus the set indexes into.
func (s *Set) Corpus() *corpus.Corpus {
	return s.corpus
}

// Len returns the number of live candidates.
func (s *Set) Len() int {
	return int(s.alive.Count())
}

// Contains reports whether w is still a candidate.
func (s *Set) Contains(w wordle.Word) bool {
	i := s.corpus.IndexOf(w)
	return i >= 0 && s.alive.Test(uint(i))
}

// Weight returns the corpus weight of w if it is still a candidate, else 0.
func (s *Set) Weight(w wordle.Word) uint32 {
	if !s.Contains(w) {
		return 0
	}
	return s.corpus.Weight(w)
}

// TotalWeight sums the weights of all live candidates.
func (s *Set) TotalWeight() uint64 {
	var total uint64
	s.each(func(i uint) bool {
		_, weight := s.corpus.At(int(i))
		total += uint64(weight)
		return true
	})
	return total
}

// Words returns the live candidates in corpus order.
func (s *Set) Words() []wordle.Word {
	out := make([]wordle.Word, 0, s.Len())
	s.each(func(i uint) bool {
		w, _ := s.corpus.At(int(i))
		out = append(out, w)
		return true
	})
	return out
}

// Each calls fn for every live candidate in corpus order until fn
// returns false.
func (s *Set) Each(fn func(w wordle.Word, weight uint32) bool) {
	s.each(func(i uint) bool {
		return fn(s.corpus.At(int(i)))
	})
}

func (s *Set) each(fn func(i uint) bool) {
	for i, ok := s.alive.NextSet(0); ok; i, ok = s.alive.NextSet(i + 1) {
		if !fn(i) {
			return
		}
	}
}

// Clone returns an independent copy sharing the same corpus.
func (s *Set) Clone() *Set {
	return &Set{corpus: s.corpus, alive: s.alive.Clone()}
}

// Equal reports whether both sets hold the same words of the same corpus.
func (s *Set) Equal(o *Set) bool {
	return s.corpus == o.corpus && s.alive.Equal(o.alive)
}

// #endregion set

// #region filter

// Remove drops w and reports whether it was present.
func (s *Set) Remove(w wordle.Word) bool {
	i := s.corpus.IndexOf(w)
	if i < 0 || !s.alive.Test(uint(i)) {
		return false
	}
	s.alive.Clear(uint(i))
	return true
}

// Retain keeps only the candidates for which keep returns true and returns
// how many were removed.
func (s *Set) Retain(keep func(w wordle.Word) bool) int {
	removed := 0
	s.each(func(i uint) bool {
		w, _ := s.corpus.At(int(i))
		if !keep(w) {
			s.alive.Clear(i)
			removed++
		}
		return true
	})
	return removed
}

// Apply narrows the set with one attempt: the guessed word is dropped, then
// every candidate inconsistent with the feedback. Re-applying the same
// attempt changes nothing.
func (s *Set) Apply(a wordle.Attempt) int {
	removed := 0
	if s.Remove(a.Guess) {
		removed++
	}
	return removed + s.Retain(func(w wordle.Word) bool {
		return wordle.IsConsistent(a, w)
	})
}

// ApplyConstraints narrows the set with a compiled history in one pass.
func (s *Set) ApplyConstraints(c *wordle.Constraints) int {
	return s.Retain(c.Allows)
}

// #endregion filter
