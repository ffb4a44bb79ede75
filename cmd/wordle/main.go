package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/wordle-engine/internal/config"
	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/dataset"
	"github.com/danielpatrickdp/wordle-engine/internal/logging"
	"github.com/danielpatrickdp/wordle-engine/internal/strategy"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #region main
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// #endregion main

// #region app

var errNoDatabase = errors.New("no database: pass --db or set store.path")

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:          "wordle",
		Short:        "Wordle solver engine",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Logging, a.verbose)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "wordle.yaml", "config file (missing file = defaults)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newSimulateCmd(a),
		newAssistCmd(a),
		newServeCmd(a),
		newInspectCmd(a),
		newReplayCmd(a),
	)
	return root
}

// dictionary loads the configured word lists, or the shipped ones.
func (a *app) dictionary() (*corpus.Dictionary, error) {
	if a.cfg.Dataset.Words != "" {
		return corpus.LoadDictionaryFiles(a.cfg.Dataset.Words, a.cfg.Dataset.Answers)
	}
	return dataset.Load()
}

// dbPath returns flag, or the configured store path when the flag is empty.
func (a *app) dbPath(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Store.Path
}

// requireDB is dbPath for commands that cannot run without a database.
func (a *app) requireDB(flag string) (string, error) {
	path := a.dbPath(flag)
	if path == "" {
		return "", errNoDatabase
	}
	return path, nil
}

// solverOptions turns the solver section of the config into options.
// stream separates the opener random sequences of concurrent solvers that
// share one seed.
func (a *app) solverOptions(dict *corpus.Dictionary, seed, stream uint64) ([]strategy.Option, error) {
	opts := []strategy.Option{
		strategy.WithWorkers(a.cfg.Solver.Workers),
		strategy.WithLogger(a.logger),
	}
	if a.cfg.Solver.AnswersOnly {
		opts = append(opts, strategy.WithCandidates(dict.Answers))
	}
	if len(a.cfg.Solver.Openers) > 0 {
		openers := make([]wordle.Word, 0, len(a.cfg.Solver.Openers))
		for _, s := range a.cfg.Solver.Openers {
			w, err := wordle.ParseWord(s)
			if err != nil {
				return nil, fmt.Errorf("solver.openers: %w", err)
			}
			openers = append(openers, w)
		}
		opts = append(opts, strategy.WithOpeners(openers))
	}
	if seed != 0 {
		opts = append(opts, strategy.WithRand(rand.New(rand.NewPCG(seed, stream))))
	}
	return opts, nil
}

// #endregion app
