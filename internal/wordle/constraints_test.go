package wordle

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func consistentWithAll(history []Attempt, w Word) bool {
	for _, a := range history {
		if !IsConsistent(a, w) {
			return false
		}
	}
	return true
}

func TestConstraintsEquivalentToConsistency(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	const letters = "abcde"

	for round := 0; round < 300; round++ {
		secret := randomWord(r, letters)
		history := make([]Attempt, 1+r.IntN(3))
		for i := range history {
			g := randomWord(r, letters)
			history[i] = Attempt{Guess: g, Pattern: Color(secret, g)}
		}

		c, err := Compile(history)
		if err != nil {
			t.Fatalf("Compile(%v): %v", history, err)
		}
		if !c.Allows(secret) {
			t.Fatalf("secret %s rejected by %v (%s)", secret, history, c)
		}
		for i := 0; i < 200; i++ {
			w := randomWord(r, letters)
			if got, want := c.Allows(w), consistentWithAll(history, w); got != want {
				t.Fatalf("Allows(%s) = %v, consistency = %v, history %v", w, got, want, history)
			}
		}
	}
}

func TestConstraintsEquivalentOnArbitraryValidPatterns(t *testing.T) {
	r := rand.New(rand.NewPCG(13, 14))
	const letters = "abc"

	checked := 0
	for checked < 500 {
		g := randomWord(r, letters)
		p, _ := PatternFromIndex(r.IntN(NumPatterns))
		a := Attempt{Guess: g, Pattern: p}
		c := NewConstraints()
		if err := c.Add(a); err != nil {
			if !errors.Is(err, ErrImpossiblePattern) {
				t.Fatalf("Add(%s): %v", a, err)
			}
			continue
		}
		checked++
		for i := 0; i < 50; i++ {
			w := randomWord(r, letters)
			if got, want := c.Allows(w), IsConsistent(a, w); got != want {
				t.Fatalf("Allows(%s) = %v, IsConsistent = %v for %s", w, got, want, a)
			}
		}
	}
}

func TestConstraintsRepeatedLetters(t *testing.T) {
	// "eerie" against "there" scores MIMIC: two e's marked, the third capped.
	secret := MustParseWord("there")
	guess := MustParseWord("eerie")
	a := Attempt{Guess: guess, Pattern: Color(secret, guess)}
	if a.Pattern.String() != "MIMIC" {
		t.Fatalf("got %s, want MIMIC", a.Pattern)
	}

	c, err := Compile([]Attempt{a})
	if err != nil {
		t.Fatal(err)
	}
	if !c.Allows(secret) {
		t.Fatalf("secret rejected: %s", c)
	}
	// rteee passes every position check but carries three e's.
	if c.Allows(MustParseWord("rteee")) {
		t.Errorf("rteee should exceed the e count cap: %s", c)
	}
	if IsConsistent(a, MustParseWord("rteee")) {
		t.Errorf("rteee should be inconsistent with %s", a)
	}
}

func TestCompileRejectsImpossiblePattern(t *testing.T) {
	a, err := NewAttempt("aabcd", "IMIII")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Compile([]Attempt{a}); !errors.Is(err, ErrImpossiblePattern) {
		t.Fatalf("expected ErrImpossiblePattern, got %v", err)
	}
}

func TestConstraintsString(t *testing.T) {
	a, _ := NewAttempt("weary", "CIMII")
	c, err := Compile([]Attempt{a})
	if err != nil {
		t.Fatal(err)
	}
	want := "w???? +a>=1 -e -r +w>=1 -y"
	if got := c.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
