// Package rpc exposes the solver as a gRPC service and provides its client.
package rpc

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/strategy"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #region server-struct

// DefaultIdleTimeout is how long a game may go without a call before
// NewGame drops it.
const DefaultIdleTimeout = 30 * time.Minute

// Server holds one solver per open game.
type Server struct {
	dict        *corpus.Dictionary
	defaultKind strategy.Kind
	opts        []strategy.Option
	logger      *zap.Logger
	idle        time.Duration
	now         func() time.Time

	mu    sync.Mutex
	games map[string]*session
}

type session struct {
	mu       sync.Mutex
	solver   *strategy.Solver
	lastUsed time.Time // guarded by Server.mu
}

// NewServer returns a server whose games use dict. Games that name no
// strategy get kind. opts are passed to every solver.
func NewServer(dict *corpus.Dictionary, kind strategy.Kind, logger *zap.Logger, opts ...strategy.Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		dict:        dict,
		defaultKind: kind,
		opts:        opts,
		logger:      logger,
		idle:        DefaultIdleTimeout,
		now:         time.Now,
		games:       make(map[string]*session),
	}
}

// SetIdleTimeout changes how long an unused game is kept. 0 keeps games
// until EndGame.
func (s *Server) SetIdleTimeout(d time.Duration) {
	s.mu.Lock()
	s.idle = d
	s.mu.Unlock()
}

// Games returns the number of open games.
func (s *Server) Games() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// lookup returns the session for id and marks it used.
func (s *Server) lookup(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.games[id]
	if ok {
		sess.lastUsed = s.now()
	}
	return sess, ok
}

// evictIdle drops games unused for longer than the idle timeout. Callers
// hold s.mu.
func (s *Server) evictIdle(now time.Time) int {
	if s.idle <= 0 {
		return 0
	}
	evicted := 0
	for id, sess := range s.games {
		if now.Sub(sess.lastUsed) > s.idle {
			delete(s.games, id)
			evicted++
		}
	}
	return evicted
}

// #endregion server-struct

// #region handlers

// NewGame opens a game and returns its id.
func (s *Server) NewGame(_ context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	kind := s.defaultKind
	if name := in.GetValue(); name != "" {
		k, err := strategy.ParseKind(name)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		kind = k
	}

	id := uuid.New().String()
	sess := &session{solver: strategy.New(kind, s.dict.Guesses, s.opts...)}

	s.mu.Lock()
	now := s.now()
	evicted := s.evictIdle(now)
	sess.lastUsed = now
	s.games[id] = sess
	s.mu.Unlock()

	if evicted > 0 {
		s.logger.Info("idle games dropped", zap.Int("count", evicted))
	}
	s.logger.Info("game opened", zap.String("game_id", id), zap.String("strategy", string(kind)))
	return wrapperspb.String(id), nil
}

// Suggest applies the attempts the game has not seen yet and returns the
// next guess.
func (s *Server) Suggest(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	gameID, history, err := decodeSuggestRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	for i, a := range history {
		if err := s.dict.Validate(a.Guess); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "attempt %d: %v", i+1, err)
		}
	}
	sess, ok := s.lookup(gameID)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "game %s not found", gameID)
	}

	sess.mu.Lock()
	guess, err := sess.solver.Solve(history)
	remaining := sess.solver.Remaining()
	sess.mu.Unlock()
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Debug("suggest",
		zap.String("game_id", gameID),
		zap.Int("attempts", len(history)),
		zap.Stringer("guess", guess),
		zap.Int("remaining", remaining),
	)
	out, err := encodeSuggestion(Suggestion{Guess: guess, Remaining: remaining})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// EndGame releases a game.
func (s *Server) EndGame(_ context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	id := in.GetValue()
	s.mu.Lock()
	_, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if !ok {
		return nil, status.Errorf(codes.NotFound, "game %s not found", id)
	}
	s.logger.Info("game closed", zap.String("game_id", id))
	return &emptypb.Empty{}, nil
}

// toStatus maps solver errors to gRPC codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, strategy.ErrNoCandidates),
		errors.Is(err, strategy.ErrHistoryRewound),
		errors.Is(err, strategy.ErrSolved):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, corpus.ErrUnknownGuess),
		errors.Is(err, wordle.ErrImpossiblePattern),
		errors.Is(err, wordle.ErrInvalidLength),
		errors.Is(err, wordle.ErrInvalidLetter),
		errors.Is(err, wordle.ErrInvalidScore):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// #endregion handlers

// #region serve

// Serve runs srv on lis until ctx is cancelled, then stops gracefully.
func Serve(ctx context.Context, lis net.Listener, srv *Server, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	RegisterSolverServiceServer(gs, srv)

	errCh := make(chan error, 1)
	go func() { errCh <- gs.Serve(lis) }()

	select {
	case <-ctx.Done():
		gs.GracefulStop()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

// #endregion serve
