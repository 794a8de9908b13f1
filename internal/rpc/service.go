// Package rpc exposes the scoring engine over gRPC as vibescan.v1.Scoring.
//
// Messages are google.protobuf.Struct so clients in any language can call the
// service with only the well-known types. Request shapes:
//
//	Score:   {"variant": "individual", "answers": {"q1": 5, "q2": 3}}
//	Catalog: {"variant": "manager"}
//
// Responses carry the same JSON documents the HTTP API returns.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
	"github.com/nyashahama/vibe-scan-backend/internal/metrics"
	"github.com/nyashahama/vibe-scan-backend/internal/scoring"
)

const serviceName = "vibescan.v1.Scoring"

// ScoringServer is the server API for vibescan.v1.Scoring.
type ScoringServer interface {
	Score(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Catalog(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Service implements ScoringServer on top of the scoring engine.
type Service struct {
	metrics *metrics.Metrics
}

var _ ScoringServer = (*Service)(nil)

// NewServer returns a gRPC server with the scoring service and the standard
// health service registered. m may be nil.
func NewServer(m *metrics.Metrics, logger *slog.Logger) *grpc.Server {
	if logger == nil {
		logger = slog.Default()
	}
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		recoverInterceptor(logger),
		loggingInterceptor(logger),
	))

	RegisterScoringServer(srv, &Service{metrics: m})

	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

// Score runs the engine on one answer set.
func (s *Service) Score(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	c, err := variantOf(req)
	if err != nil {
		return nil, err
	}
	answers, err := answersOf(req)
	if err != nil {
		return nil, err
	}

	analysis := scoring.Analyze(c, answers)
	s.metrics.Scored(c.Variant, "grpc")
	return toStruct(analysis)
}

// Catalog returns a variant's questions and categories.
func (s *Service) Catalog(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	c, err := variantOf(req)
	if err != nil {
		return nil, err
	}

	cats := make([]map[string]string, len(c.Categories))
	for i, cat := range c.Categories {
		cats[i] = map[string]string{"name": cat.Name, "short": cat.Short, "color": cat.Color}
	}
	return toStruct(map[string]any{
		"variant":           c.Variant,
		"key_prefix":        c.KeyPrefix,
		"profile_threshold": c.ProfileThreshold,
		"categories":        cats,
		"questions":         c.Questions,
	})
}

// ─── REQUEST DECODING ─────────────────────────────────────────────────────────

func variantOf(req *structpb.Struct) (*catalog.Catalog, error) {
	v, ok := req.GetFields()["variant"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "variant is required")
	}
	c, err := catalog.ByVariant(v.GetStringValue())
	if errors.Is(err, catalog.ErrUnknownVariant) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return c, nil
}

// answersOf reads the "answers" object. Values must be whole numbers in 1–5;
// keys are passed through unchecked, as on the HTTP surface.
func answersOf(req *structpb.Struct) (scoring.AnswerSet, error) {
	answers := scoring.AnswerSet{}
	v, ok := req.GetFields()["answers"]
	if !ok {
		return answers, nil
	}
	obj := v.GetStructValue()
	if obj == nil {
		return nil, status.Error(codes.InvalidArgument, "answers must be an object")
	}
	for key, val := range obj.GetFields() {
		n, isNum := val.GetKind().(*structpb.Value_NumberValue)
		if !isNum {
			return nil, status.Errorf(codes.InvalidArgument, "answers[%s] must be a number", key)
		}
		f := n.NumberValue
		if f != math.Trunc(f) || f < 1 || f > 5 {
			return nil, status.Errorf(codes.InvalidArgument, "answers[%s] must be a whole number from 1 to 5", key)
		}
		answers[key] = int(f)
	}
	return answers, nil
}

// toStruct converts a JSON-serialisable value to a Struct via its JSON form,
// so gRPC responses use the same field names as the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}

// ─── INTERCEPTORS ─────────────────────────────────────────────────────────────

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("grpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}

func recoverInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("grpc panic", "method", info.FullMethod, "panic", p)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
