package eval

import (
	"fmt"
	"slices"
)

// #region summarize
// Summarize aggregates games. Unsolved games still count their turns toward
// the average.
func Summarize(games []Game, config EvalConfig) Summary {
	s := Summary{
		Games:     len(games),
		Histogram: make(map[int]int),
	}
	for _, g := range games {
		s.TotalTurns += g.Turns
		if g.Solved {
			s.Solved++
			s.Histogram[g.Turns]++
		} else {
			s.Failed++
		}
		if g.Turns > s.WorstTurns {
			s.Worst, s.WorstTurns = g.Answer, g.Turns
		}
	}
	if s.Games > 0 {
		s.AverageTurns = float64(s.TotalTurns) / float64(s.Games)
		s.Efficiency = Efficiency(s.AverageTurns, config.BaselineTurns)
	}
	return s
}

// Efficiency compares an average against a baseline: positive when fewer
// turns were needed, 0 at the baseline.
func Efficiency(average, baseline float64) float64 {
	if average+baseline == 0 {
		return 0
	}
	return (baseline - average) * 2 / (average + baseline)
}

// HistogramKeys returns the turn counts present in h in ascending order.
func HistogramKeys(h map[int]int) []int {
	keys := make([]int, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// #endregion summarize

// #region eval-harness
// EvalHarness checks a summary against configured thresholds.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run judges a summary. Efficiency is reported but never fails a run.
func (h *EvalHarness) Run(s Summary) EvalResult {
	var metrics []EvalMetric
	passed := true
	var failReasons []string

	// 1. Average turns
	avgPass := h.config.MaxAverageTurns <= 0 || s.AverageTurns <= h.config.MaxAverageTurns
	metrics = append(metrics, EvalMetric{
		Name:  "average_turns",
		Value: s.AverageTurns,
		Pass:  avgPass,
	})
	if !avgPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("average %.4f exceeds %.4f", s.AverageTurns, h.config.MaxAverageTurns))
	}

	// 2. Unsolved games
	failPass := s.Failed <= h.config.MaxFailures
	metrics = append(metrics, EvalMetric{
		Name:  "failed_games",
		Value: float64(s.Failed),
		Pass:  failPass,
	})
	if !failPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("%d unsolved games exceed %d", s.Failed, h.config.MaxFailures))
	}

	// 3. Efficiency: informational
	metrics = append(metrics, EvalMetric{
		Name:  "efficiency",
		Value: s.Efficiency,
		Pass:  s.Efficiency > 0,
	})

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness
