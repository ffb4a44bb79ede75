package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #region client-struct
// Client wraps the gRPC connection to a solver server.
type Client struct {
	conn   *grpc.ClientConn
	client SolverServiceClient
}

// #endregion client-struct

// #region constructor
// NewClient connects to the solver gRPC server at addr.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return NewClientWithConn(conn), nil
}

// NewClientWithConn wraps an existing connection. Close closes it.
func NewClientWithConn(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn, client: NewSolverServiceClient(conn)}
}

// NewClientWithService creates a Client with an injected service implementation.
// Used for testing without a real gRPC connection.
func NewClientWithService(svc SolverServiceClient) *Client {
	return &Client{client: svc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region calls
// NewGame opens a game with the named strategy; "" uses the server default.
func (c *Client) NewGame(ctx context.Context, strategy string) (string, error) {
	resp, err := c.client.NewGame(ctx, wrapperspb.String(strategy))
	if err != nil {
		return "", fmt.Errorf("new game rpc: %w", err)
	}
	return resp.GetValue(), nil
}

// Suggest sends the full history of a game and returns the next guess.
func (c *Client) Suggest(ctx context.Context, gameID string, history []wordle.Attempt) (Suggestion, error) {
	req, err := encodeSuggestRequest(gameID, history)
	if err != nil {
		return Suggestion{}, fmt.Errorf("encode suggest: %w", err)
	}
	resp, err := c.client.Suggest(ctx, req)
	if err != nil {
		return Suggestion{}, fmt.Errorf("suggest rpc: %w", err)
	}
	return decodeSuggestion(resp)
}

// EndGame releases a game on the server.
func (c *Client) EndGame(ctx context.Context, gameID string) error {
	if _, err := c.client.EndGame(ctx, wrapperspb.String(gameID)); err != nil {
		return fmt.Errorf("end game rpc: %w", err)
	}
	return nil
}

// #endregion calls

// #region remote-solver
// RemoteSolver plays one server-side game through the client. It satisfies
// game.Solver.
type RemoteSolver struct {
	ctx       context.Context
	client    *Client
	gameID    string
	remaining int
}

// Solver returns a RemoteSolver bound to gameID. ctx bounds every call.
func (c *Client) Solver(ctx context.Context, gameID string) *RemoteSolver {
	return &RemoteSolver{ctx: ctx, client: c, gameID: gameID, remaining: -1}
}

// Solve asks the server for the next guess.
func (r *RemoteSolver) Solve(history []wordle.Attempt) (wordle.Word, error) {
	s, err := r.client.Suggest(r.ctx, r.gameID, history)
	if err != nil {
		return wordle.Word{}, err
	}
	r.remaining = s.Remaining
	return s.Guess, nil
}

// Remaining returns the candidate count the server reported last.
func (r *RemoteSolver) Remaining() int {
	return r.remaining
}

// #endregion remote-solver
