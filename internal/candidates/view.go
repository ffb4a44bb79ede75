package candidates

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// View is an immutable snapshot of a Set, safe to read from many
// goroutines while the Set itself keeps changing.
type View struct {
	corpus  *corpus.Corpus
	alive   *bitset.BitSet
	words   []wordle.Word
	weights []uint32
	total   uint64
}

// View freezes the current candidates.
func (s *Set) View() View {
	v := View{
		corpus:  s.corpus,
		alive:   s.alive.Clone(),
		words:   make([]wordle.Word, 0, s.Len()),
		weights: make([]uint32, 0, s.Len()),
	}
	s.Each(func(w wordle.Word, weight uint32) bool {
		v.words = append(v.words, w)
		v.weights = append(v.weights, weight)
		v.total += uint64(weight)
		return true
	})
	return v
}

// Len returns the number of words in the view.
func (v View) Len() int {
	return len(v.words)
}

// At returns the i-th word and its weight in corpus order.
func (v View) At(i int) (wordle.Word, uint32) {
	return v.words[i], v.weights[i]
}

// Words returns a copy of the words in corpus order.
func (v View) Words() []wordle.Word {
	out := make([]wordle.Word, len(v.words))
	copy(out, v.words)
	return out
}

// Weight returns the weight of w if it is in the view, else 0.
func (v View) Weight(w wordle.Word) uint32 {
	if v.corpus == nil {
		return 0
	}
	i := v.corpus.IndexOf(w)
	if i < 0 || !v.alive.Test(uint(i)) {
		return 0
	}
	return v.corpus.Weight(w)
}

// TotalWeight is the sum of all weights in the view.
func (v View) TotalWeight() uint64 {
	return v.total
}
