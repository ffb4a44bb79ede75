package dataset

import "testing"

func TestLoad(t *testing.T) {
	d, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Guesses.Len() != 108 {
		t.Errorf("got %d guesses, want 108", d.Guesses.Len())
	}
	if len(d.Answers) != 40 {
		t.Errorf("got %d answers, want 40", len(d.Answers))
	}
	for _, a := range d.Answers {
		if err := d.Validate(a); err != nil {
			t.Errorf("answer %s not a valid guess: %v", a, err)
		}
	}
}

func TestLoadReturnsIndependentValues(t *testing.T) {
	a, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if a.Guesses == b.Guesses {
		t.Fatal("expected distinct corpus values")
	}
}
