package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// ErrUnknownGuess is returned when a word is not in the dictionary.
var ErrUnknownGuess = errors.New("unknown guess")

// #region corpus

// Corpus is an immutable, ordered list of unique words with positive
// weights. Solvers share one Corpus by pointer and never modify it.
type Corpus struct {
	words   []wordle.Word
	weights []uint32
	index   map[wordle.Word]int
}

// New builds a corpus from parallel slices. Duplicate words keep their
// first position and take the last weight.
func New(words []wordle.Word, weights []uint32) (*Corpus, error) {
	if len(words) != len(weights) {
		return nil, fmt.Errorf("corpus: %d words but %d weights", len(words), len(weights))
	}
	c := &Corpus{
		words:   make([]wordle.Word, 0, len(words)),
		weights: make([]uint32, 0, len(words)),
		index:   make(map[wordle.Word]int, len(words)),
	}
	for i, w := range words {
		if !w.Valid() {
			return nil, fmt.Errorf("corpus: word %d: %w", i, wordle.ErrInvalidLetter)
		}
		if weights[i] == 0 {
			return nil, fmt.Errorf("corpus: word %s: weight must be positive", w)
		}
		c.add(w, weights[i])
	}
	return c, nil
}

func (c *Corpus) add(w wordle.Word, weight uint32) {
	if i, ok := c.index[w]; ok {
		c.weights[i] = weight
		return
	}
	c.index[w] = len(c.words)
	c.words = append(c.words, w)
	c.weights = append(c.weights, weight)
}

// Load reads "word weight" lines. The weight is optional and defaults to 1.
// Blank lines and lines starting with # are skipped; any other malformed
// line is an error naming its line number.
func Load(r io.Reader) (*Corpus, error) {
	c := &Corpus{index: make(map[wordle.Word]int, 4096)}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected \"word [weight]\", got %q", lineNum, line)
		}
		w, err := wordle.ParseWord(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		weight := uint64(1)
		if len(fields) == 2 {
			weight, err = strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse weight: %w", lineNum, err)
			}
			if weight == 0 {
				return nil, fmt.Errorf("line %d: weight must be positive", lineNum)
			}
		}
		c.add(w, uint32(weight))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return c, nil
}

// LoadFile is Load for a path on disk.
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return c, nil
}

// #endregion corpus

// #region accessors

// Len returns the number of words.
func (c *Corpus) Len() int {
	return len(c.words)
}

// At returns the word and weight at index i.
func (c *Corpus) At(i int) (wordle.Word, uint32) {
	return c.words[i], c.weights[i]
}

// IndexOf returns the position of w, or -1.
func (c *Corpus) IndexOf(w wordle.Word) int {
	if i, ok := c.index[w]; ok {
		return i
	}
	return -1
}

// Contains reports whether w is in the corpus.
func (c *Corpus) Contains(w wordle.Word) bool {
	_, ok := c.index[w]
	return ok
}

// Weight returns the weight of w, or 0 if it is absent.
func (c *Corpus) Weight(w wordle.Word) uint32 {
	if i, ok := c.index[w]; ok {
		return c.weights[i]
	}
	return 0
}

// Words returns a copy of the words in corpus order.
func (c *Corpus) Words() []wordle.Word {
	out := make([]wordle.Word, len(c.words))
	copy(out, c.words)
	return out
}

// #endregion accessors
