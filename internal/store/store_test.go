package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/wordle-engine/internal/eval"
	"github.com/danielpatrickdp/wordle-engine/internal/game"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// clock returns a now func that advances by step on every call.
func clock(start time.Time, step time.Duration) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func result(answer string, guesses ...string) game.Result {
	a := wordle.MustParseWord(answer)
	res := game.Result{Answer: a}
	for i, g := range guesses {
		w := wordle.MustParseWord(g)
		res.Log = append(res.Log, game.Turn{Guess: w, Pattern: wordle.Color(a, w), Remaining: 100 - i})
		if w == a {
			res.Solved = true
		}
	}
	res.Turns = len(guesses)
	return res
}

func TestCreateAndGetRun(t *testing.T) {
	s := tempDB(t)

	run, err := s.CreateRun("entropy")
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected non-empty run ID")
	}

	got, err := s.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Strategy != "entropy" || got.Finished() {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("started %v, want %v", got.StartedAt, run.StartedAt)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := tempDB(t)
	if _, err := s.GetRun("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.FinishRun("missing", eval.Summary{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordGameAndTurns(t *testing.T) {
	s := tempDB(t)
	run, err := s.CreateRun("hybrid")
	if err != nil {
		t.Fatal(err)
	}

	g1, err := s.RecordGame(run.ID, result("hello", "crane", "world", "hello"))
	if err != nil {
		t.Fatalf("RecordGame: %v", err)
	}
	if _, err := s.RecordGame(run.ID, result("whale", "crane")); err != nil {
		t.Fatalf("RecordGame: %v", err)
	}

	games, err := s.RunGames(run.ID)
	if err != nil {
		t.Fatalf("RunGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].ID != g1.ID || games[0].Answer != "hello" || !games[0].Solved || games[0].Turns != 3 {
		t.Errorf("unexpected first game: %+v", games[0])
	}
	if games[1].Solved {
		t.Errorf("second game should be unsolved")
	}

	turns, err := s.GameTurns(g1.ID)
	if err != nil {
		t.Fatalf("GameTurns: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}
	want := []TurnRecord{
		{Turn: 1, Guess: "crane", Pattern: "IIIIM", Remaining: 100},
		{Turn: 2, Guess: "world", Pattern: "IMICI", Remaining: 99},
		{Turn: 3, Guess: "hello", Pattern: "CCCCC", Remaining: 98},
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turn %d: got %+v, want %+v", i+1, turns[i], want[i])
		}
	}
}

func TestRecordGameRequiresRun(t *testing.T) {
	s := tempDB(t)
	if _, err := s.RecordGame("missing", result("hello", "hello")); err == nil {
		t.Fatal("expected foreign key error")
	}
}

func TestFinishAndListRuns(t *testing.T) {
	s := tempDB(t)
	s.now = clock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Second)

	first, _ := s.CreateRun("entropy")
	second, _ := s.CreateRun("frequency")

	sum := eval.Summary{Games: 2, Solved: 2, TotalTurns: 7, AverageTurns: 3.5, Efficiency: eval.Efficiency(3.5, 4)}
	if err := s.FinishRun(first.ID, sum); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Errorf("expected newest first, got %s, %s", runs[0].Strategy, runs[1].Strategy)
	}
	if !runs[1].Finished() || runs[1].AverageTurns != 3.5 || runs[1].Games != 2 {
		t.Errorf("unexpected finished run: %+v", runs[1])
	}

	limited, err := s.ListRuns(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Errorf("limit: got %+v", limited)
	}
}

func TestBestStrategy(t *testing.T) {
	s := tempDB(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = clock(base, time.Minute)

	finish := func(strategy string, games int, avg float64) {
		t.Helper()
		run, err := s.CreateRun(strategy)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.FinishRun(run.ID, eval.Summary{Games: games, AverageTurns: avg}); err != nil {
			t.Fatal(err)
		}
	}

	best, err := s.BestStrategy(1)
	if err != nil {
		t.Fatalf("BestStrategy: %v", err)
	}
	if best != "" {
		t.Fatalf("expected no strategy on empty store, got %q", best)
	}

	finish("frequency", 40, 4.5)
	finish("entropy", 40, 3.6)
	finish("hybrid", 40, 3.8)
	finish("hybrid", 2, 1.0) // too few games to count

	// An unfinished run never counts.
	if _, err := s.CreateRun("frequency"); err != nil {
		t.Fatal(err)
	}

	best, err = s.BestStrategy(10)
	if err != nil {
		t.Fatalf("BestStrategy: %v", err)
	}
	if best != "entropy" {
		t.Errorf("got %q, want entropy", best)
	}

	best, err = s.BestStrategy(1)
	if err != nil {
		t.Fatal(err)
	}
	// hybrid: (3.8*40 + 1.0*2) / 42 ≈ 3.67, still behind entropy.
	if best != "entropy" {
		t.Errorf("got %q, want entropy", best)
	}
}

func TestBestStrategyDecaysOldRuns(t *testing.T) {
	s := tempDB(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	s.now = func() time.Time { return now }

	old, _ := s.CreateRun("entropy")
	if err := s.FinishRun(old.ID, eval.Summary{Games: 10, AverageTurns: 3.0}); err != nil {
		t.Fatal(err)
	}

	now = base.Add(70 * 24 * time.Hour)
	recent, _ := s.CreateRun("hybrid")
	if err := s.FinishRun(recent.ID, eval.Summary{Games: 10, AverageTurns: 3.4}); err != nil {
		t.Fatal(err)
	}
	newer, _ := s.CreateRun("entropy")
	if err := s.FinishRun(newer.ID, eval.Summary{Games: 10, AverageTurns: 3.5}); err != nil {
		t.Fatal(err)
	}

	// Ten half-lives old, the 3.0 run barely moves entropy's recent 3.5.
	best, err := s.BestStrategy(1)
	if err != nil {
		t.Fatal(err)
	}
	if best != "hybrid" {
		t.Errorf("got %q, want hybrid", best)
	}
}

func TestMemoryDatabase(t *testing.T) {
	s, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	run, err := s.CreateRun("entropy")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetRun(run.ID); err != nil {
		t.Fatalf("GetRun: %v", err)
	}
}
