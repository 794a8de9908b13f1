package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service descriptor and client stub for vibescan.v1.Scoring, written in the
// form protoc-gen-go-grpc emits. Both messages are google.protobuf.Struct.

const (
	scoringScoreFullMethod   = "/" + serviceName + "/Score"
	scoringCatalogFullMethod = "/" + serviceName + "/Catalog"
)

// RegisterScoringServer registers srv on s.
func RegisterScoringServer(s grpc.ServiceRegistrar, srv ScoringServer) {
	s.RegisterService(&scoringServiceDesc, srv)
}

var scoringServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ScoringServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Score", Handler: scoringScoreHandler},
		{MethodName: "Catalog", Handler: scoringCatalogHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vibescan/v1/scoring.proto",
}

func scoringScoreHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServer).Score(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: scoringScoreFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScoringServer).Score(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func scoringCatalogHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServer).Catalog(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: scoringCatalogFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScoringServer).Catalog(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ScoringClient is the client API for vibescan.v1.Scoring.
type ScoringClient interface {
	Score(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Catalog(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type scoringClient struct {
	cc grpc.ClientConnInterface
}

// NewScoringClient returns a client bound to cc.
func NewScoringClient(cc grpc.ClientConnInterface) ScoringClient {
	return &scoringClient{cc: cc}
}

func (c *scoringClient) Score(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, scoringScoreFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *scoringClient) Catalog(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, scoringCatalogFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
