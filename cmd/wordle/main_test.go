package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/wordle-engine/internal/store"
)

// execute runs the command tree with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSimulateRecordsAndInspects(t *testing.T) {
	db := filepath.Join(t.TempDir(), "bench.db")

	out, err := execute(t, "", "simulate", "--algorithm", "entropy", "--count", "5", "--seed", "3", "--workers", "2", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy: entropy")
	assert.Contains(t, out, "Total number of guesses attempted:")
	assert.Contains(t, out, "Average number of moves:")
	assert.Contains(t, out, "Solved: 5/5")
	assert.Contains(t, out, "Eval: PASS")

	out, err = execute(t, "", "inspect", "--db", db, "--json")
	require.NoError(t, err)
	var runs []runRow
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "entropy", runs[0].Strategy)
	assert.Equal(t, 5, runs[0].Games)
	assert.True(t, runs[0].Finished)

	out, err = execute(t, "", "inspect", "--db", db, "--run", runs[0].RunID)
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy: entropy")
	assert.Contains(t, out, "cigar")

	st, err := store.NewStore(db)
	require.NoError(t, err)
	games, err := st.RunGames(runs[0].RunID)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.Len(t, games, 5)

	for _, g := range games {
		out, err = execute(t, "", "inspect", "--db", db, "--game", g.ID)
		require.NoError(t, err)
		assert.Contains(t, out, "tares")

		out, err = execute(t, "", "replay", "--db", db, "--game", g.ID)
		require.NoError(t, err, out)
		assert.Contains(t, out, "0 diverge, 0 rejected")
	}
}

func TestSimulateAutoFallsBackWithoutHistory(t *testing.T) {
	out, err := execute(t, "", "simulate", "--algorithm", "auto", "--count", "3", "--max-turns", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy: entropy")
}

func TestSimulateRejectsUnknownAlgorithm(t *testing.T) {
	_, err := execute(t, "", "simulate", "--algorithm", "minimax")
	assert.Error(t, err)
}

func TestInspectEmptyDatabase(t *testing.T) {
	out, err := execute(t, "", "inspect", "--db", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "no runs found")
}

func TestReplayFixture(t *testing.T) {
	out, err := execute(t, "", "replay", "--fixture", filepath.Join("..", "..", "internal", "replay", "testdata", "weary.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Summary: 2 total, 2 match, 0 diverge")
	assert.Contains(t, out, "left: woman")
}

func TestReplayFixtureDiverges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	fixture := `description: wrong count
attempts:
  - guess: weary
    pattern: CIMII
    expected_remaining: 3
`
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	out, err := execute(t, "", "replay", "--fixture", path)
	assert.ErrorIs(t, err, errDiverged)
	assert.Contains(t, out, "DIFF")
}

func TestReplayNeedsSource(t *testing.T) {
	_, err := execute(t, "", "replay")
	assert.Error(t, err)
}

func TestAssistSession(t *testing.T) {
	out, err := execute(t, "IIIII\n", "assist", "--algorithm", "entropy")
	require.NoError(t, err)
	assert.Contains(t, out, "My suggestion is 'tares' (108 candidates)")
	assert.Contains(t, out, "(5 candidates)")
}

func TestStorePathFromEnvironment(t *testing.T) {
	t.Setenv("WORDLE_DB", filepath.Join(t.TempDir(), "env.db"))

	_, err := execute(t, "", "simulate", "--algorithm", "frequency", "--count", "2", "--seed", "1")
	require.NoError(t, err)

	out, err := execute(t, "", "inspect", "--json")
	require.NoError(t, err)
	var runs []runRow
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "frequency", runs[0].Strategy)
	assert.Equal(t, 2, runs[0].Games)
}

func TestInspectWithoutDatabase(t *testing.T) {
	t.Setenv("WORDLE_DB", "")

	_, err := execute(t, "", "inspect")
	assert.ErrorIs(t, err, errNoDatabase)

	_, err = execute(t, "", "replay", "--game", "g1")
	assert.ErrorIs(t, err, errNoDatabase)
}

func TestSimulateAnswersOnly(t *testing.T) {
	out, err := execute(t, "", "simulate", "--algorithm", "entropy", "--count", "3", "--seed", "2", "--answers-only")
	require.NoError(t, err)
	assert.Contains(t, out, "Solved: 3/3")
}
