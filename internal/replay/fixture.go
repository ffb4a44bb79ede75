package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #region fixture-types

// Fixture is a recorded game: optional inline corpus plus the attempts and
// the candidate counts expected after each one.
type Fixture struct {
	Description string           `json:"description" yaml:"description"`
	Words       []FixtureWord    `json:"words,omitempty" yaml:"words,omitempty"`
	Attempts    []FixtureAttempt `json:"attempts" yaml:"attempts"`
}

// FixtureWord is one inline corpus entry.
type FixtureWord struct {
	Word   string `json:"word" yaml:"word"`
	Weight uint32 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// FixtureAttempt is one guess with its feedback.
type FixtureAttempt struct {
	Guess             string `json:"guess" yaml:"guess"`
	Pattern           string `json:"pattern" yaml:"pattern"`
	ExpectedRemaining *int   `json:"expected_remaining,omitempty" yaml:"expected_remaining,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads a fixture file. .yaml and .yml files are parsed as
// YAML, anything else as JSON.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	f, err := ParseFixture(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return f, nil
}

// ParseFixture decodes a fixture in the given format ("json" or "yaml").
func ParseFixture(data []byte, format string) (*Fixture, error) {
	var f Fixture
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &f)
	case "yaml":
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unknown fixture format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Corpus returns the inline corpus, or fallback when the fixture has none.
func (f *Fixture) Corpus(fallback *corpus.Corpus) (*corpus.Corpus, error) {
	if len(f.Words) == 0 {
		if fallback == nil {
			return nil, fmt.Errorf("fixture has no words and no fallback corpus")
		}
		return fallback, nil
	}
	words := make([]wordle.Word, len(f.Words))
	weights := make([]uint32, len(f.Words))
	for i, fw := range f.Words {
		w, err := wordle.ParseWord(fw.Word)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i+1, err)
		}
		words[i] = w
		weights[i] = max(fw.Weight, 1)
	}
	return corpus.New(words, weights)
}

// ToAttempts converts the fixture attempts to domain attempts.
func (f *Fixture) ToAttempts() ([]wordle.Attempt, error) {
	out := make([]wordle.Attempt, len(f.Attempts))
	for i, fa := range f.Attempts {
		a, err := wordle.NewAttempt(fa.Guess, fa.Pattern)
		if err != nil {
			return nil, fmt.Errorf("attempt %d: %w", i+1, err)
		}
		out[i] = a
	}
	return out, nil
}

// Expected returns the expected remaining count per attempt; -1 where the
// fixture sets none.
func (f *Fixture) Expected() []int {
	out := make([]int, len(f.Attempts))
	for i, fa := range f.Attempts {
		out[i] = -1
		if fa.ExpectedRemaining != nil {
			out[i] = *fa.ExpectedRemaining
		}
	}
	return out
}

// #endregion fixture-loader
