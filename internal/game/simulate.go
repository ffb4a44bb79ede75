package game

// #region imports
import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/eval"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #endregion

// #region simulate

// Factory returns a fresh solver for the puzzle at position game of the
// run, so per-game seeds stay stable regardless of scheduling.
type Factory func(game int) Solver

// SimulateOptions configure a batch run.
type SimulateOptions struct {
	Options
	Count    int                   // play only the first Count answers; 0 = all
	Workers  int                   // concurrent games; <= 0 uses GOMAXPROCS
	Progress func(done, total int) // called after each game, serialised
	Eval     eval.EvalConfig       // zero value uses eval.DefaultEvalConfig
}

// Simulate plays every answer with its own solver and summarises the run.
// Results are in answer order. A game that hits the turn limit counts as
// unsolved; any other error aborts the run.
func Simulate(ctx context.Context, answers []wordle.Word, factory Factory, dict *corpus.Dictionary, opts SimulateOptions) (eval.Summary, []Result, error) {
	if opts.Count > 0 && opts.Count < len(answers) {
		answers = answers[:opts.Count]
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(answers))
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, answer := range answers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Play(answer, factory(i), dict, opts.Options)
			if err != nil && !errors.Is(err, ErrTurnLimit) {
				return err
			}
			results[i] = res

			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, len(answers))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return eval.Summary{}, nil, err
	}
	if err := ctx.Err(); err != nil {
		return eval.Summary{}, nil, err
	}

	config := opts.Eval
	if config.BaselineTurns == 0 {
		config = eval.DefaultEvalConfig()
	}
	games := make([]eval.Game, len(results))
	for i, r := range results {
		games[i] = r.Outcome()
	}
	return eval.Summarize(games, config), results, nil
}

// #endregion
