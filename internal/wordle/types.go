package wordle

import (
	"errors"
	"fmt"
	"strings"
)

// #region constants

// Length is the number of letters in every word.
const Length = 5

// NumPatterns is the number of distinct feedback patterns (3^Length).
const NumPatterns = 243

const alphabet = 26

// #endregion constants

// #region errors

var (
	ErrInvalidLength     = errors.New("invalid length")
	ErrInvalidLetter     = errors.New("invalid letter")
	ErrInvalidScore      = errors.New("invalid score")
	ErrImpossiblePattern = errors.New("impossible feedback pattern")
)

// #endregion errors

// #region word

// Word is a fixed-length lowercase word. The zero value is not a valid word.
type Word [Length]byte

// ParseWord validates s and returns it as a Word. Upper case letters are
// folded to lower case; anything outside a-z is rejected.
func ParseWord(s string) (Word, error) {
	var w Word
	if len(s) != Length {
		return w, fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidLength, s, len(s), Length)
	}
	for i := 0; i < Length; i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c < 'a' || c > 'z' {
			return Word{}, fmt.Errorf("%w: %q at position %d", ErrInvalidLetter, s, i)
		}
		w[i] = c
	}
	return w, nil
}

// MustParseWord is ParseWord for literals known to be valid.
func MustParseWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Word) String() string {
	return string(w[:])
}

// Valid reports whether every byte of w is a lowercase letter.
func (w Word) Valid() bool {
	for _, c := range w {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// #endregion word

// #region score

// Score classifies one letter of a guess.
type Score uint8

const (
	Incorrect Score = iota
	Misplaced
	Correct
)

func (s Score) String() string {
	switch s {
	case Correct:
		return "C"
	case Misplaced:
		return "M"
	case Incorrect:
		return "I"
	}
	return "?"
}

func parseScore(c byte) (Score, bool) {
	switch c {
	case 'C', 'c', '2':
		return Correct, true
	case 'M', 'm', '1':
		return Misplaced, true
	case 'I', 'i', '0':
		return Incorrect, true
	}
	return 0, false
}

// #endregion score

// #region pattern

// Pattern is the per-position feedback for one guess.
type Pattern [Length]Score

// AllCorrect is the pattern of a solved puzzle.
var AllCorrect = Pattern{Correct, Correct, Correct, Correct, Correct}

// ParsePattern reads a pattern such as "CIMII". Digits 2/1/0 are accepted
// for Correct/Misplaced/Incorrect.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	s = strings.TrimSpace(s)
	if len(s) != Length {
		return p, fmt.Errorf("%w: pattern %q has %d scores, want %d", ErrInvalidLength, s, len(s), Length)
	}
	for i := 0; i < Length; i++ {
		sc, ok := parseScore(s[i])
		if !ok {
			return Pattern{}, fmt.Errorf("%w: %q at position %d", ErrInvalidScore, s, i)
		}
		p[i] = sc
	}
	return p, nil
}

func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(Length)
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}

// Index encodes p as a base-3 number in [0, NumPatterns).
func (p Pattern) Index() int {
	idx := 0
	for i := Length - 1; i >= 0; i-- {
		idx = idx*3 + int(p[i])
	}
	return idx
}

// PatternFromIndex is the inverse of Pattern.Index.
func PatternFromIndex(idx int) (Pattern, error) {
	var p Pattern
	if idx < 0 || idx >= NumPatterns {
		return p, fmt.Errorf("%w: pattern index %d", ErrInvalidScore, idx)
	}
	for i := 0; i < Length; i++ {
		p[i] = Score(idx % 3)
		idx /= 3
	}
	return p, nil
}

// Solved reports whether every position is Correct.
func (p Pattern) Solved() bool {
	return p == AllCorrect
}

// #endregion pattern

// #region attempt

// Attempt is one guess together with the feedback it received.
type Attempt struct {
	Guess   Word
	Pattern Pattern
}

// NewAttempt parses a guess and its feedback.
func NewAttempt(guess, pattern string) (Attempt, error) {
	w, err := ParseWord(guess)
	if err != nil {
		return Attempt{}, fmt.Errorf("guess: %w", err)
	}
	p, err := ParsePattern(pattern)
	if err != nil {
		return Attempt{}, fmt.Errorf("pattern: %w", err)
	}
	return Attempt{Guess: w, Pattern: p}, nil
}

func (a Attempt) String() string {
	return a.Guess.String() + ":" + a.Pattern.String()
}

// #endregion attempt
