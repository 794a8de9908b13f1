// Package api implements the HTTP layer for the VIBE scan backend.
// Handlers are methods on *Server. Each handler file is responsible for one
// resource group and only imports the dependencies it actually uses.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nyashahama/vibe-scan-backend/internal/metrics"
	"github.com/nyashahama/vibe-scan-backend/internal/team"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// Env is "production", "staging", or "development".
	Env string

	// AllowedOrigin is the CORS origin returned in production. Outside
	// production the request's own Origin is echoed.
	AllowedOrigin string
}

// TeamService is the team aggregation surface. *team.Service satisfies it.
type TeamService interface {
	Submit(ctx context.Context, sub team.Submission) (uuid.UUID, error)
	Results(ctx context.Context, company, teamName string) (team.Results, error)
	Teams(ctx context.Context, company string) ([]team.TeamSummary, error)
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	teams TeamService

	// metrics may be nil; gatherer backs /metrics and may be nil to disable it.
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer

	validate *validator.Validate
	cfg      Config
	logger   *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.Server.
func NewServer(
	teams TeamService,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	s := &Server{
		teams:    teams,
		metrics:  m,
		gatherer: gatherer,
		validate: newValidator(),
		cfg:      cfg,
		logger:   logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// ── API ───────────────────────────────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {
		// Catalogs and stateless scoring.
		r.Get("/catalogs/{variant}", s.handleGetCatalog)
		r.Post("/score/{variant}", s.handleScore)

		// Anonymous team submissions and dashboards.
		r.Post("/responses", s.handleSubmitResponse)
		r.Get("/teams", s.handleListTeams)
		r.Get("/team-results", s.handleTeamResults)
	})

	return r
}
