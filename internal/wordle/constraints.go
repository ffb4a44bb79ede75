package wordle

import (
	"fmt"
	"strings"
)

const allLetters = 1<<alphabet - 1

// #region constraints

// Constraints is the accumulated knowledge from a history, expressed as the
// letters allowed at each position plus bounds on each letter's count.
// For histories that pass ValidatePattern, Allows(w) holds exactly when
// IsConsistent holds for every attempt.
type Constraints struct {
	allowed [Length]uint32
	min     [alphabet]uint8
	max     [alphabet]uint8
}

// NewConstraints returns constraints that allow every word.
func NewConstraints() *Constraints {
	c := &Constraints{}
	for i := range c.allowed {
		c.allowed[i] = allLetters
	}
	for l := range c.max {
		c.max[l] = Length
	}
	return c
}

// Compile folds a whole history into one Constraints value.
func Compile(history []Attempt) (*Constraints, error) {
	c := NewConstraints()
	for i, a := range history {
		if err := c.Add(a); err != nil {
			return nil, fmt.Errorf("attempt %d: %w", i+1, err)
		}
	}
	return c, nil
}

// Add narrows c with one attempt.
func (c *Constraints) Add(a Attempt) error {
	if err := ValidatePattern(a.Guess, a.Pattern); err != nil {
		return err
	}
	var marked [alphabet]uint8
	var capped [alphabet]bool
	for i := 0; i < Length; i++ {
		l := a.Guess[i] - 'a'
		bit := uint32(1) << l
		switch a.Pattern[i] {
		case Correct:
			c.allowed[i] &= bit
			marked[l]++
		case Misplaced:
			c.allowed[i] &^= bit
			marked[l]++
		case Incorrect:
			c.allowed[i] &^= bit
			capped[l] = true
		}
	}
	for l := 0; l < alphabet; l++ {
		if marked[l] > c.min[l] {
			c.min[l] = marked[l]
		}
		if capped[l] && marked[l] < c.max[l] {
			c.max[l] = marked[l]
		}
	}
	return nil
}

// Allows reports whether w satisfies every constraint.
func (c *Constraints) Allows(w Word) bool {
	var counts [alphabet]uint8
	for i := 0; i < Length; i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
		l := w[i] - 'a'
		if c.allowed[i]&(1<<l) == 0 {
			return false
		}
		counts[l]++
	}
	for l := 0; l < alphabet; l++ {
		if counts[l] < c.min[l] || counts[l] > c.max[l] {
			return false
		}
	}
	return true
}

// #endregion constraints

// #region describe

// String renders known positions, excluded letters and required counts,
// e.g. "w???? +a>=1 -e -r +w>=1 -y".
func (c *Constraints) String() string {
	var b strings.Builder
	for i := 0; i < Length; i++ {
		if l, ok := single(c.allowed[i]); ok {
			b.WriteByte('a' + l)
		} else {
			b.WriteByte('?')
		}
	}
	for l := 0; l < alphabet; l++ {
		letter := byte('a' + l)
		switch {
		case c.max[l] == 0:
			fmt.Fprintf(&b, " -%c", letter)
		case c.min[l] > 0 && c.min[l] == c.max[l]:
			fmt.Fprintf(&b, " +%c=%d", letter, c.min[l])
		case c.min[l] > 0:
			fmt.Fprintf(&b, " +%c>=%d", letter, c.min[l])
		}
	}
	return b.String()
}

func single(mask uint32) (byte, bool) {
	if mask == 0 || mask&(mask-1) != 0 {
		return 0, false
	}
	var l byte
	for mask > 1 {
		mask >>= 1
		l++
	}
	return l, true
}

// #endregion describe
