// Package dataset ships a small weighted word list and answer list.
package dataset

import (
	"bytes"
	_ "embed"

	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
)

//go:embed words.txt
var words []byte

//go:embed answers.txt
var answers []byte

// Load parses the shipped lists into a new Dictionary. Each call returns an
// independent value.
func Load() (*corpus.Dictionary, error) {
	return corpus.LoadDictionary(bytes.NewReader(words), bytes.NewReader(answers))
}
