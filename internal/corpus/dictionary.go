package corpus

import (
	"fmt"
	"io"
	"os"

	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// Dictionary pairs the weighted guess corpus with the list of words that
// can be answers. Every answer is also a valid guess.
type Dictionary struct {
	Guesses *Corpus
	Answers []wordle.Word
}

// NewDictionary checks that every answer is present in guesses.
func NewDictionary(guesses *Corpus, answers []wordle.Word) (*Dictionary, error) {
	for _, a := range answers {
		if !guesses.Contains(a) {
			return nil, fmt.Errorf("answer %s: %w", a, ErrUnknownGuess)
		}
	}
	return &Dictionary{Guesses: guesses, Answers: answers}, nil
}

// LoadDictionary reads a weighted word list and an answer list.
func LoadDictionary(words, answers io.Reader) (*Dictionary, error) {
	guesses, err := Load(words)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	ans, err := Load(answers)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	return NewDictionary(guesses, ans.Words())
}

// LoadDictionaryFiles is LoadDictionary for paths on disk.
func LoadDictionaryFiles(wordsPath, answersPath string) (*Dictionary, error) {
	wf, err := os.Open(wordsPath)
	if err != nil {
		return nil, fmt.Errorf("open words %s: %w", wordsPath, err)
	}
	defer wf.Close()
	af, err := os.Open(answersPath)
	if err != nil {
		return nil, fmt.Errorf("open answers %s: %w", answersPath, err)
	}
	defer af.Close()
	return LoadDictionary(wf, af)
}

// Validate returns ErrUnknownGuess if w is not an allowed guess.
func (d *Dictionary) Validate(w wordle.Word) error {
	if !d.Guesses.Contains(w) {
		return fmt.Errorf("%w: %s", ErrUnknownGuess, w)
	}
	return nil
}

// AnswerLimit returns at most n answers in list order; n <= 0 means all.
func (d *Dictionary) AnswerLimit(n int) []wordle.Word {
	if n <= 0 || n >= len(d.Answers) {
		return d.Answers
	}
	return d.Answers[:n]
}
