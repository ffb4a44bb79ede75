package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/wordle-engine/internal/eval"
	"github.com/danielpatrickdp/wordle-engine/internal/game"
	"github.com/danielpatrickdp/wordle-engine/internal/store"
	"github.com/danielpatrickdp/wordle-engine/internal/strategy"
)

type simulateFlags struct {
	algorithm   string
	count       int
	maxTurns    int
	seed        uint64
	workers     int
	dbPath      string
	progress    bool
	answersOnly bool
}

func newSimulateCmd(a *app) *cobra.Command {
	var f simulateFlags
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play every answer with one strategy and report the average",
		Long: `Play the answer list with a strategy and report total guesses,
average moves and efficiency over a 4-turn human baseline.

With a database (--db or store.path) the run and every game are recorded,
and --algorithm auto picks the strategy with the best recorded average.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, a, f)
		},
	}
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "frequency | entropy | hybrid | auto (default from config)")
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "play only the first N answers (0 = all)")
	cmd.Flags().IntVar(&f.maxTurns, "max-turns", -1, "turn limit per game (0 = unlimited, default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "opener seed (0 = config or random)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "concurrent games (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "record the run in this SQLite database (default store.path; none = no recording)")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "show a progress bar")
	cmd.Flags().BoolVar(&f.answersOnly, "answers-only", false, "only answer-list words can be the secret")
	return cmd
}

// #region simulate

func runSimulate(cmd *cobra.Command, a *app, f simulateFlags) error {
	dict, err := a.dictionary()
	if err != nil {
		return err
	}
	if f.answersOnly {
		a.cfg.Solver.AnswersOnly = true
	}

	dbPath := a.dbPath(f.dbPath)
	var st *store.Store
	if dbPath != "" {
		st, err = store.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	requested := f.algorithm
	if requested == "" {
		requested = a.cfg.Strategy
	}
	var memory strategy.Memory
	if st != nil {
		memory = st
	}
	kind, err := strategy.Select(requested, memory, a.cfg.Game.MinGames)
	if err != nil {
		return err
	}

	seed := f.seed
	if seed == 0 {
		seed = a.cfg.Solver.Seed
	}
	maxTurns := f.maxTurns
	if maxTurns < 0 {
		maxTurns = a.cfg.Game.MaxTurns
	}

	// Validate the solver section once; per-game options differ only in
	// the random stream.
	if _, err := a.solverOptions(dict, seed, 0); err != nil {
		return err
	}
	factory := func(i int) game.Solver {
		opts, _ := a.solverOptions(dict, seed, uint64(i))
		// Games already run in parallel; rank each one on a single goroutine
		// unless the config asks otherwise.
		if a.cfg.Solver.Workers == 0 {
			opts = append(opts, strategy.WithWorkers(1))
		}
		return strategy.New(kind, dict.Guesses, opts...)
	}

	answers := dict.AnswerLimit(f.count)
	opts := game.SimulateOptions{
		Options: game.Options{MaxTurns: maxTurns},
		Workers: f.workers,
		Eval: eval.EvalConfig{
			BaselineTurns:   a.cfg.Game.BaselineTurns,
			MaxAverageTurns: a.cfg.Game.MaxAverageTurns,
		},
	}
	if f.progress {
		bar := progressbar.NewOptions(len(answers),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription(string(kind)),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		opts.Progress = func(done, _ int) { _ = bar.Set(done) }
		defer bar.Finish()
	}

	a.logger.Info("simulation started",
		zap.String("strategy", string(kind)),
		zap.Int("games", len(answers)),
		zap.Uint64("seed", seed),
	)
	summary, results, err := game.Simulate(cmd.Context(), answers, factory, dict, opts)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	if st != nil {
		run, err := recordRun(st, string(kind), summary, results)
		if err != nil {
			return err
		}
		a.logger.Info("run recorded", zap.String("run_id", run), zap.String("db", dbPath))
	}

	verdict := eval.NewEvalHarness(opts.Eval).Run(summary)
	printSummary(cmd.OutOrStdout(), kind, summary, verdict)
	return nil
}

func recordRun(st *store.Store, kind string, summary eval.Summary, results []game.Result) (string, error) {
	run, err := st.CreateRun(kind)
	if err != nil {
		return "", err
	}
	for _, res := range results {
		if _, err := st.RecordGame(run.ID, res); err != nil {
			return "", err
		}
	}
	if err := st.FinishRun(run.ID, summary); err != nil {
		return "", err
	}
	return run.ID, nil
}

// #endregion simulate

// #region output

func printSummary(w io.Writer, kind strategy.Kind, s eval.Summary, verdict eval.EvalResult) {
	fmt.Fprintf(w, "Strategy: %s\n", kind)
	fmt.Fprintf(w, "Total number of guesses attempted: %d\n", s.TotalTurns)
	fmt.Fprintf(w, "Average number of moves: %.4f\n", s.AverageTurns)
	fmt.Fprintf(w, "Efficiency over a human: %.2f %%\n", s.Efficiency*100)
	fmt.Fprintf(w, "Solved: %d/%d", s.Solved, s.Games)
	if s.WorstTurns > 0 {
		fmt.Fprintf(w, "  worst: %s (%d turns)", s.Worst, s.WorstTurns)
	}
	fmt.Fprintln(w)

	if len(s.Histogram) > 0 {
		fmt.Fprintln(w, "\nTurns | Games")
		fmt.Fprintln(w, "------+------")
		for _, turns := range eval.HistogramKeys(s.Histogram) {
			n := s.Histogram[turns]
			fmt.Fprintf(w, "%5d | %5d %s\n", turns, n, strings.Repeat("#", n))
		}
	}

	fmt.Fprintln(w)
	for _, m := range verdict.Metrics {
		mark := "OK"
		if !m.Pass {
			mark = "FAIL"
		}
		fmt.Fprintf(w, "%-14s %8.4f  %s\n", m.Name, m.Value, mark)
	}
	if verdict.Passed {
		fmt.Fprintln(w, "Eval: PASS")
	} else {
		fmt.Fprintf(w, "Eval: FAIL (%s)\n", verdict.Reason)
	}
}

// #endregion output
