// Package store records benchmark runs in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/wordle-engine/internal/eval"
	"github.com/danielpatrickdp/wordle-engine/internal/game"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	strategy      TEXT NOT NULL,
	started_at    TEXT NOT NULL,
	finished_at   TEXT,
	games         INTEGER NOT NULL DEFAULT 0,
	solved        INTEGER NOT NULL DEFAULT 0,
	failed        INTEGER NOT NULL DEFAULT 0,
	average_turns REAL NOT NULL DEFAULT 0,
	efficiency    REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS games (
	game_id       TEXT PRIMARY KEY,
	run_id        TEXT NOT NULL,
	answer        TEXT NOT NULL,
	turns         INTEGER NOT NULL,
	solved        INTEGER NOT NULL,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS turns (
	game_id       TEXT NOT NULL,
	turn          INTEGER NOT NULL,
	guess         TEXT NOT NULL,
	pattern       TEXT NOT NULL,
	remaining     INTEGER NOT NULL,
	PRIMARY KEY (game_id, turn),
	FOREIGN KEY (game_id) REFERENCES games(game_id)
);

CREATE INDEX IF NOT EXISTS idx_games_run ON games(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_strategy ON runs(strategy, finished_at);
`

// #endregion schema

// timeFormat is fixed width so stored timestamps sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// #region store-struct
// Store manages benchmark records in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region runs
// CreateRun starts a new run for strategy.
func (s *Store) CreateRun(strategy string) (Run, error) {
	run := Run{
		ID:        uuid.New().String(),
		Strategy:  strategy,
		StartedAt: s.now(),
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, strategy, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Strategy, run.StartedAt.Format(timeFormat),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stores the summary of a completed run.
func (s *Store) FinishRun(runID string, sum eval.Summary) error {
	res, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, games = ?, solved = ?, failed = ?, average_turns = ?, efficiency = ?
		 WHERE run_id = ?`,
		s.now().Format(timeFormat), sum.Games, sum.Solved, sum.Failed, sum.AverageTurns, sum.Efficiency, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrNotFound)
	}
	return nil
}

const runColumns = `run_id, strategy, started_at, finished_at, games, solved, failed, average_turns, efficiency`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var started string
	var finished sql.NullString
	err := row.Scan(&run.ID, &run.Strategy, &started, &finished,
		&run.Games, &run.Solved, &run.Failed, &run.AverageTurns, &run.Efficiency)
	if err != nil {
		return Run{}, err
	}
	run.StartedAt, _ = time.Parse(timeFormat, started)
	if finished.Valid {
		run.FinishedAt, _ = time.Parse(timeFormat, finished.String)
	}
	return run, nil
}

// GetRun retrieves a run by id.
func (s *Store) GetRun(id string) (Run, error) {
	run, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// #endregion runs

// #region games
// RecordGame stores a finished game and its turns under runID.
func (s *Store) RecordGame(runID string, res game.Result) (GameRecord, error) {
	rec := GameRecord{
		ID:        uuid.New().String(),
		RunID:     runID,
		Answer:    res.Answer.String(),
		Turns:     res.Turns,
		Solved:    res.Solved,
		CreatedAt: s.now(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return GameRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	solved := 0
	if rec.Solved {
		solved = 1
	}
	_, err = tx.Exec(
		`INSERT INTO games (game_id, run_id, answer, turns, solved, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RunID, rec.Answer, rec.Turns, solved, rec.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return GameRecord{}, fmt.Errorf("insert game: %w", err)
	}

	for i, turn := range res.Log {
		_, err = tx.Exec(
			`INSERT INTO turns (game_id, turn, guess, pattern, remaining) VALUES (?, ?, ?, ?, ?)`,
			rec.ID, i+1, turn.Guess.String(), turn.Pattern.String(), turn.Remaining,
		)
		if err != nil {
			return GameRecord{}, fmt.Errorf("insert turn %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return GameRecord{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

// RunGames lists the games of a run in the order they were recorded.
func (s *Store) RunGames(runID string) ([]GameRecord, error) {
	rows, err := s.db.Query(
		`SELECT game_id, run_id, answer, turns, solved, created_at FROM games WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("run games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var solved int
		var created string
		if err := rows.Scan(&g.ID, &g.RunID, &g.Answer, &g.Turns, &solved, &created); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.Solved = solved == 1
		g.CreatedAt, _ = time.Parse(timeFormat, created)
		games = append(games, g)
	}
	return games, rows.Err()
}

// GameTurns returns the turns of a game in order.
func (s *Store) GameTurns(gameID string) ([]TurnRecord, error) {
	rows, err := s.db.Query(
		`SELECT turn, guess, pattern, remaining FROM turns WHERE game_id = ? ORDER BY turn`, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("game turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		if err := rows.Scan(&t.Turn, &t.Guess, &t.Pattern, &t.Remaining); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// #endregion games

// #region best-strategy

// halfLife is the age at which a run counts half as much in BestStrategy.
const halfLife = 7 * 24 * time.Hour

// BestStrategy returns the strategy with the lowest decay-weighted average
// turns over finished runs of at least minGames games. Each run is weighted
// by its game count and halved in weight every seven days. Returns "" when
// no run qualifies.
func (s *Store) BestStrategy(minGames int) (string, error) {
	rows, err := s.db.Query(
		`SELECT strategy, games, average_turns, finished_at FROM runs
		 WHERE finished_at IS NOT NULL AND games >= ? AND games > 0`,
		minGames,
	)
	if err != nil {
		return "", fmt.Errorf("best strategy: %w", err)
	}
	defer rows.Close()

	type accum struct {
		weightedSum float64
		totalWeight float64
	}
	now := s.now()
	byStrategy := make(map[string]*accum)
	for rows.Next() {
		var strategy, finished string
		var games int
		var average float64
		if err := rows.Scan(&strategy, &games, &average, &finished); err != nil {
			return "", fmt.Errorf("scan run: %w", err)
		}
		at, err := time.Parse(timeFormat, finished)
		if err != nil {
			continue
		}
		age := max(now.Sub(at), 0)
		weight := float64(games) * math.Exp2(-float64(age)/float64(halfLife))

		a, ok := byStrategy[strategy]
		if !ok {
			a = &accum{}
			byStrategy[strategy] = a
		}
		a.weightedSum += average * weight
		a.totalWeight += weight
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	best := ""
	bestAvg := math.Inf(1)
	for strategy, a := range byStrategy {
		if a.totalWeight == 0 {
			continue
		}
		avg := a.weightedSum / a.totalWeight
		if avg < bestAvg || (avg == bestAvg && strategy < best) {
			best, bestAvg = strategy, avg
		}
	}
	return best, nil
}

// #endregion best-strategy
