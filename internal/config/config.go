// Package config loads the engine configuration from YAML and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// #region types

// Config is the root configuration.
type Config struct {
	Strategy string        `yaml:"strategy"` // frequency | entropy | hybrid | auto
	Solver   SolverConfig  `yaml:"solver"`
	Game     GameConfig    `yaml:"game"`
	Dataset  DatasetConfig `yaml:"dataset"`
	Store    StoreConfig   `yaml:"store"`
	Server   ServerConfig  `yaml:"server"`
	Logging  LoggingConfig `yaml:"logging"`
}

// SolverConfig tunes guess selection.
type SolverConfig struct {
	Openers []string `yaml:"openers"` // empty = the strategy's built-in openers
	Workers int      `yaml:"workers"` // ranking goroutines; 0 = GOMAXPROCS
	Seed    uint64   `yaml:"seed"`    // opener choice seed; 0 = random

	// AnswersOnly limits the possible secrets to the answer list instead
	// of every allowed guess.
	AnswersOnly bool `yaml:"answers_only"`
}

// GameConfig bounds games and benchmark scoring.
type GameConfig struct {
	MaxTurns        int     `yaml:"max_turns"` // 0 = unlimited
	BaselineTurns   float64 `yaml:"baseline_turns"`
	MaxAverageTurns float64 `yaml:"max_average_turns"`
	MinGames        int     `yaml:"min_games"` // runs smaller than this are ignored by strategy auto
}

// DatasetConfig points at word lists. Empty paths use the shipped lists.
type DatasetConfig struct {
	Words   string `yaml:"words"`
	Answers string `yaml:"answers"`
}

// StoreConfig locates the benchmark database. An empty path disables
// recording.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the gRPC server.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	IdleTimeout time.Duration `yaml:"idle_timeout"` // drop games unused this long; 0 = never
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// #endregion types

// #region defaults

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Strategy: "entropy",
		Game: GameConfig{
			BaselineTurns:   4,
			MaxAverageTurns: 6,
			MinGames:        10,
		},
		Server:  ServerConfig{Addr: "localhost:50061", IdleTimeout: 30 * time.Minute},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// #endregion defaults

// #region load

// Load reads path over the defaults, then applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides reads WORDLE_DB, WORDLE_ADDR, WORDLE_STRATEGY,
// WORDLE_LOG_LEVEL and WORDLE_WORKERS.
func (c *Config) applyEnvOverrides() {
	c.Store.Path = envOr("WORDLE_DB", c.Store.Path)
	c.Server.Addr = envOr("WORDLE_ADDR", c.Server.Addr)
	c.Strategy = envOr("WORDLE_STRATEGY", c.Strategy)
	c.Logging.Level = envOr("WORDLE_LOG_LEVEL", c.Logging.Level)
	if v := os.Getenv("WORDLE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Solver.Workers = n
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.Solver.Workers < 0 {
		return fmt.Errorf("solver.workers must be >= 0, got %d", c.Solver.Workers)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be >= 0, got %v", c.Server.IdleTimeout)
	}
	if c.Game.MaxTurns < 0 {
		return fmt.Errorf("game.max_turns must be >= 0, got %d", c.Game.MaxTurns)
	}
	if c.Game.BaselineTurns <= 0 {
		return fmt.Errorf("game.baseline_turns must be > 0, got %v", c.Game.BaselineTurns)
	}
	if (c.Dataset.Words == "") != (c.Dataset.Answers == "") {
		return fmt.Errorf("dataset.words and dataset.answers must be set together")
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// #endregion load
