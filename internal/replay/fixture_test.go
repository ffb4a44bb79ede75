package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/wordle-engine/internal/dataset"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #region fixture-tests

// TestFixture_Weary replays the shipped-corpus fixture and compares each
// turn's candidate count with the recorded expectation.
func TestFixture_Weary(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "weary.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	d, err := dataset.Load()
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}

	results, err := Run(f, d.Guesses)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Match {
			t.Errorf("turn %d: expected %d remaining, got %d", r.Turn, r.Expected, r.Remaining)
		}
	}
	if got := results[1].Candidates; len(got) != 1 || got[0].String() != "woman" {
		t.Errorf("expected only woman to remain, got %v", got)
	}
}

func TestFixture_InlineYAML(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "inline.yaml"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(f.Words) != 6 {
		t.Fatalf("expected 6 inline words, got %d", len(f.Words))
	}

	c, err := f.Corpus(nil)
	if err != nil {
		t.Fatalf("Corpus: %v", err)
	}
	if c.Weight(wordle.MustParseWord("hello")) != 1 {
		t.Errorf("missing weight should default to 1")
	}

	results, err := Run(f, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := Summarize(results)
	if s.Matches != 2 || s.Diverged() || s.FinalRemaining != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestFixture_NoCorpus(t *testing.T) {
	f := &Fixture{Attempts: []FixtureAttempt{{Guess: "crane", Pattern: "IIIII"}}}
	if _, err := Run(f, nil); err == nil {
		t.Fatal("expected error without words or fallback")
	}
}

func TestFixture_BadAttempt(t *testing.T) {
	f := &Fixture{
		Words:    []FixtureWord{{Word: "crane"}},
		Attempts: []FixtureAttempt{{Guess: "cran", Pattern: "IIIII"}},
	}
	if _, err := Run(f, nil); err == nil {
		t.Fatal("expected error for short guess")
	}
}

func TestLoadFixture_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFixture(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFixture(bad); err == nil {
		t.Error("expected parse error")
	}
	if _, err := ParseFixture([]byte("{}"), "toml"); err == nil {
		t.Error("expected unknown format error")
	}
}

// #endregion fixture-tests
