// Package metrics owns the Prometheus collectors exported by the service.
// Every recording method is safe to call on a nil *Metrics, so components can
// run without metrics in tests and in the CLI.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vibescan"

// Metrics groups the collectors.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	scored       *prometheus.CounterVec
	submissions  *prometheus.CounterVec
	teamCache    *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. Collectors that are
// already registered (a second New against the same registry) are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		scored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answer_sets_scored_total",
			Help:      "Answer sets scored, by catalog variant and surface (http, grpc).",
		}, []string{"variant", "surface"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Stored response submissions by role and outcome.",
		}, []string{"role", "outcome"}),
		teamCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_results_cache_total",
			Help:      "Team result cache lookups by outcome (hit, miss).",
		}, []string{"outcome"}),
	}

	var err error
	if m.httpRequests, err = register(reg, m.httpRequests); err != nil {
		return nil, err
	}
	if m.httpDuration, err = register(reg, m.httpDuration); err != nil {
		return nil, err
	}
	if m.scored, err = register(reg, m.scored); err != nil {
		return nil, err
	}
	if m.submissions, err = register(reg, m.submissions); err != nil {
		return nil, err
	}
	if m.teamCache, err = register(reg, m.teamCache); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("metrics: register: %w", err)
	}
	return c, nil
}

// ObserveHTTP records one completed request.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, fmt.Sprint(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Scored counts one scored answer set.
func (m *Metrics) Scored(variant, surface string) {
	if m == nil {
		return
	}
	m.scored.WithLabelValues(variant, surface).Inc()
}

// Submitted counts one submission attempt.
func (m *Metrics) Submitted(role string, err error) {
	if m == nil {
		return
	}
	outcome := "stored"
	if err != nil {
		outcome = "failed"
	}
	m.submissions.WithLabelValues(role, outcome).Inc()
}

// TeamCache counts one team-results cache lookup.
func (m *Metrics) TeamCache(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.teamCache.WithLabelValues(outcome).Inc()
}
