package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a run or game id does not exist.
var ErrNotFound = errors.New("not found")

// #region records

// Run is one benchmark of a strategy over a list of answers.
type Run struct {
	ID           string
	Strategy     string
	StartedAt    time.Time
	FinishedAt   time.Time // zero while the run is in progress
	Games        int
	Solved       int
	Failed       int
	AverageTurns float64
	Efficiency   float64
}

// Finished reports whether FinishRun has been called for r.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// GameRecord is one puzzle played within a run.
type GameRecord struct {
	ID        string
	RunID     string
	Answer    string
	Turns     int
	Solved    bool
	CreatedAt time.Time
}

// TurnRecord is one guess of a recorded game.
type TurnRecord struct {
	Turn      int
	Guess     string
	Pattern   string
	Remaining int // -1 when the solver did not report it
}

// #endregion records
