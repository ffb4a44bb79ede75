package eval

import "github.com/danielpatrickdp/wordle-engine/internal/wordle"

// #region eval-config
// EvalConfig holds thresholds for judging a benchmark run.
type EvalConfig struct {
	BaselineTurns   float64 // efficiency is measured against this average
	MaxAverageTurns float64 // fail if the average exceeds this; 0 disables
	MaxFailures     int     // fail if more games than this went unsolved
}

// DefaultEvalConfig returns the 4-turn baseline and the usual 6-guess bound.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		BaselineTurns:   4,
		MaxAverageTurns: 6,
		MaxFailures:     0,
	}
}

// #endregion eval-config

// #region game
// Game is the outcome of one finished puzzle.
type Game struct {
	Answer wordle.Word
	Turns  int
	Solved bool
}

// #endregion game

// #region summary
// Summary aggregates a batch of games.
type Summary struct {
	Games        int
	TotalTurns   int
	Solved       int
	Failed       int
	AverageTurns float64
	Efficiency   float64
	Worst        wordle.Word
	WorstTurns   int
	Histogram    map[int]int // turns -> solved games
}

// #endregion summary

// #region eval-metric
// EvalMetric captures a single check on a summary.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the verdict on a benchmark run.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
