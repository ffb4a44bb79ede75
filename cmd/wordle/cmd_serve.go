package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/wordle-engine/internal/rpc"
	"github.com/danielpatrickdp/wordle-engine/internal/store"
	"github.com/danielpatrickdp/wordle-engine/internal/strategy"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, dbPath string
	var answersOnly bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over gRPC",
		Long: `Run the SolverService gRPC server until SIGINT or SIGTERM.

Each client game gets its own solver. The default strategy comes from the
config; "auto" reads recorded runs from --db or store.path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			dict, err := a.dictionary()
			if err != nil {
				return err
			}

			if answersOnly {
				a.cfg.Solver.AnswersOnly = true
			}

			var memory strategy.Memory
			if path := a.dbPath(dbPath); path != "" {
				st, err := store.NewStore(path)
				if err != nil {
					return err
				}
				defer st.Close()
				memory = st
			}
			kind, err := strategy.Select(a.cfg.Strategy, memory, a.cfg.Game.MinGames)
			if err != nil {
				return err
			}
			// Sessions run concurrently, so the server keeps the shared
			// random source instead of a seeded one.
			opts, err := a.solverOptions(dict, 0, 0)
			if err != nil {
				return err
			}

			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := rpc.NewServer(dict, kind, a.logger, opts...)
			srv.SetIdleTimeout(a.cfg.Server.IdleTimeout)
			a.logger.Info("solver server listening",
				zap.String("addr", lis.Addr().String()),
				zap.String("strategy", string(kind)),
				zap.Int("words", dict.Guesses.Len()),
				zap.Bool("answers_only", a.cfg.Solver.AnswersOnly),
				zap.Duration("idle_timeout", a.cfg.Server.IdleTimeout),
			)
			if err := rpc.Serve(ctx, lis, srv); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			a.logger.Info("solver server stopped", zap.Int("open_games", srv.Games()))
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "benchmark database for strategy auto (default store.path)")
	cmd.Flags().BoolVar(&answersOnly, "answers-only", false, "only answer-list words can be the secret")
	return cmd
}
