package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/wordle-engine/internal/game"
	"github.com/danielpatrickdp/wordle-engine/internal/rpc"
	"github.com/danielpatrickdp/wordle-engine/internal/strategy"
)

func newAssistCmd(a *app) *cobra.Command {
	var algorithm, remote string
	cmd := &cobra.Command{
		Use:   "assist",
		Short: "Suggest guesses for a live game from typed feedback",
		Long: `Suggest a guess, read the feedback you got for it, and repeat.

Feedback is five letters: C correct, M misplaced, I incorrect. Prefix it
with a word to report a guess other than the suggestion, e.g. "crane IIMCI".
With --remote the suggestions come from a running "wordle serve".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dict, err := a.dictionary()
			if err != nil {
				return err
			}
			if algorithm == "" {
				algorithm = a.cfg.Strategy
			}

			var solver game.Solver
			if remote != "" {
				client, err := rpc.NewClient(remote)
				if err != nil {
					return err
				}
				defer client.Close()
				ctx := cmd.Context()
				if ctx == nil {
					ctx = context.Background()
				}
				// The server resolves "auto" to its own default.
				name := algorithm
				if name == strategy.Auto {
					name = ""
				}
				id, err := client.NewGame(ctx, name)
				if err != nil {
					return err
				}
				defer client.EndGame(context.WithoutCancel(ctx), id)
				a.logger.Debug("remote game", zap.String("addr", remote), zap.String("game_id", id))
				solver = client.Solver(ctx, id)
			} else {
				kind, err := strategy.Select(algorithm, nil, a.cfg.Game.MinGames)
				if err != nil {
					return err
				}
				opts, err := a.solverOptions(dict, a.cfg.Solver.Seed, 0)
				if err != nil {
					return err
				}
				solver = strategy.New(kind, dict.Guesses, opts...)
			}

			if _, err := game.Assist(cmd.InOrStdin(), cmd.OutOrStdout(), solver, dict); err != nil {
				return fmt.Errorf("assist: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "frequency | entropy | hybrid (default from config)")
	cmd.Flags().StringVar(&remote, "remote", "", "use the solver server at this address")
	return cmd
}
