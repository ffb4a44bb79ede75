package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "entropy", cfg.Strategy)
	assert.Empty(t, cfg.Store.Path, "recording is off unless a database is named")
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
strategy: hybrid
solver:
  openers: [crane, slate]
  workers: 4
  seed: 42
  answers_only: true
game:
  max_turns: 6
store:
  path: /tmp/runs.db
server:
  idle_timeout: 90s
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "hybrid", cfg.Strategy)
	assert.Equal(t, []string{"crane", "slate"}, cfg.Solver.Openers)
	assert.Equal(t, 4, cfg.Solver.Workers)
	assert.Equal(t, uint64(42), cfg.Solver.Seed)
	assert.True(t, cfg.Solver.AnswersOnly)
	assert.Equal(t, 90*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, "localhost:50061", cfg.Server.Addr, "sibling keys keep defaults")
	assert.Equal(t, 6, cfg.Game.MaxTurns)
	assert.Equal(t, 4.0, cfg.Game.BaselineTurns, "unset keys keep defaults")
	assert.Equal(t, "/tmp/runs.db", cfg.Store.Path)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WORDLE_DB", "env.db")
	t.Setenv("WORDLE_ADDR", ":9000")
	t.Setenv("WORDLE_STRATEGY", "frequency")
	t.Setenv("WORDLE_LOG_LEVEL", "warn")
	t.Setenv("WORDLE_WORKERS", "3")

	cfg, err := Load(writeConfig(t, "strategy: hybrid\nstore:\n  path: file.db\n"))
	require.NoError(t, err)

	assert.Equal(t, "env.db", cfg.Store.Path)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "frequency", cfg.Strategy)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Solver.Workers)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad-yaml", "strategy: [unclosed"},
		{"negative-workers", "solver:\n  workers: -1\n"},
		{"negative-turns", "game:\n  max_turns: -2\n"},
		{"zero-baseline", "game:\n  baseline_turns: 0\n"},
		{"half-dataset", "dataset:\n  words: words.txt\n"},
		{"bad-format", "logging:\n  format: xml\n"},
		{"negative-idle", "server:\n  idle_timeout: -5m\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
