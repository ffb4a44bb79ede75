package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// #region service-desc

const serviceName = "wordle.v1.SolverService"

const (
	newGameMethod = "/" + serviceName + "/NewGame"
	suggestMethod = "/" + serviceName + "/Suggest"
	endGameMethod = "/" + serviceName + "/EndGame"
)

// SolverServiceServer is the server side of wordle.v1.SolverService.
//
// NewGame takes a strategy name (empty = server default) and returns a game
// id. Suggest takes {game_id, attempts: [{guess, pattern}]} and returns
// {guess, remaining}. EndGame releases a game.
type SolverServiceServer interface {
	NewGame(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	Suggest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndGame(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// SolverServiceClient is the client side of wordle.v1.SolverService.
type SolverServiceClient interface {
	NewGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Suggest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	EndGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

// RegisterSolverServiceServer registers srv on s.
func RegisterSolverServiceServer(s grpc.ServiceRegistrar, srv SolverServiceServer) {
	s.RegisterService(&solverServiceDesc, srv)
}

var solverServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SolverServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NewGame", Handler: newGameHandler},
		{MethodName: "Suggest", Handler: suggestHandler},
		{MethodName: "EndGame", Handler: endGameHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wordle/v1/solver.proto",
}

func newGameHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverServiceServer).NewGame(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: newGameMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SolverServiceServer).NewGame(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func suggestHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverServiceServer).Suggest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: suggestMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SolverServiceServer).Suggest(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func endGameHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverServiceServer).EndGame(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: endGameMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SolverServiceServer).EndGame(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// #endregion service-desc

// #region service-client

type solverServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSolverServiceClient returns a stub bound to cc.
func NewSolverServiceClient(cc grpc.ClientConnInterface) SolverServiceClient {
	return &solverServiceClient{cc: cc}
}

func (c *solverServiceClient) NewGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, newGameMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *solverServiceClient) Suggest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, suggestMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *solverServiceClient) EndGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, endGameMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// #endregion service-client
