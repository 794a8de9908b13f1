package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/nyashahama/vibe-scan-backend/internal/api"
	"github.com/nyashahama/vibe-scan-backend/internal/config"
	"github.com/nyashahama/vibe-scan-backend/internal/db"
	"github.com/nyashahama/vibe-scan-backend/internal/metrics"
	"github.com/nyashahama/vibe-scan-backend/internal/rpc"
	"github.com/nyashahama/vibe-scan-backend/internal/store"
	"github.com/nyashahama/vibe-scan-backend/internal/team"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port)

	// ── Metrics ───────────────────────────────────────────────────────────────
	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		if m, err = metrics.New(reg); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		gatherer = reg
	}

	// ── Database ──────────────────────────────────────────────────────────────
	// Without DATABASE_URL the service still scores; team features answer 503.
	// reader and writer stay untyped nil in that case.
	var (
		reader team.Reader
		writer team.Writer
	)
	if cfg.DatabaseURL != "" {
		pool, queries, err := openDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		defer queries.Close()
		logger.Info("database connected")

		reader = queries
		writer = store.New(pool, queries)
	} else {
		logger.Warn("DATABASE_URL not set, running scoring-only")
	}

	teams := team.NewService(reader, writer, team.Config{
		MinSample: cfg.MinTeamSample,
		CacheSize: cfg.TeamCacheSize,
		CacheTTL:  cfg.TeamCacheTTL,
	}, m, logger)

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.NewServer(teams, m, gatherer, api.Config{
		Env:           cfg.Env,
		AllowedOrigin: cfg.AllowedOrigin,
	}, logger)

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// ── gRPC server ───────────────────────────────────────────────────────────
	var grpcSrv *grpc.Server
	if cfg.GRPCEnabled {
		grpcSrv = rpc.NewServer(m, logger)
	}

	// ── Listener ──────────────────────────────────────────────────────────────
	// HTTP/1.1 and gRPC share one port. cmux routes HTTP/2 requests carrying
	// content-type application/grpc to the gRPC server and the rest to chi.
	lis, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	mux := cmux.New(lis)
	var grpcL net.Listener
	if grpcSrv != nil {
		grpcL = mux.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	}
	httpL := mux.Match(cmux.Any())

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	// Root context cancelled by OS signal. Every server goroutine respects it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http listening", "addr", lis.Addr().String())
		if err := srv.Serve(httpL); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	if grpcSrv != nil {
		g.Go(func() error {
			logger.Info("grpc listening", "addr", lis.Addr().String())
			if err := grpcSrv.Serve(grpcL); err != nil && gctx.Err() == nil {
				return fmt.Errorf("grpc: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := mux.Serve(); err != nil && gctx.Err() == nil {
			return fmt.Errorf("cmux: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		// Give in-flight requests up to 20 seconds to finish.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if grpcSrv != nil {
			grpcSrv.GracefulStop()
		}
		lis.Close()
		if err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// openDB opens the connection pool, applies the schema and prepares every
// statement. Preparing validates the SQL against the live schema, so the
// server refuses to start if the two are out of sync.
func openDB(dsn string) (*sql.DB, *db.Queries, error) {
	pool, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}

	pool.SetMaxOpenConns(25)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(5 * time.Minute)
	pool.SetConnMaxIdleTime(2 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	queries, err := db.Prepare(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("prepare statements: %w", err)
	}

	return pool, queries, nil
}
