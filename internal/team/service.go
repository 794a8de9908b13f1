package team

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
	"github.com/nyashahama/vibe-scan-backend/internal/db"
	"github.com/nyashahama/vibe-scan-backend/internal/metrics"
	"github.com/nyashahama/vibe-scan-backend/internal/scoring"
	"github.com/nyashahama/vibe-scan-backend/internal/store"
)

// ─── DEPENDENCIES ────────────────────────────────────────────────────────────

// Reader is the read side of persistence. db.Querier satisfies it.
type Reader interface {
	ListResponses(ctx context.Context, arg db.ListResponsesParams) ([]db.Response, error)
	ListTeams(ctx context.Context, companyHash string) ([]db.TeamDirectory, error)
}

// Writer is the write side of persistence. *store.Store satisfies it.
type Writer interface {
	SubmitResponse(ctx context.Context, p store.SubmitResponseParams) (db.Response, error)
}

// Config tunes the service.
type Config struct {
	// MinSample is the number of employee responses required before results
	// are revealed.
	MinSample int
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{MinSample: 4, CacheSize: 512, CacheTTL: time.Minute}
}

// ─── SERVICE ─────────────────────────────────────────────────────────────────

// Service stores submissions and computes team results.
type Service struct {
	reader  Reader
	writer  Writer
	cfg     Config
	cache   *expirable.LRU[string, Results]
	metrics *metrics.Metrics
	logger  *slog.Logger

	// mu orders cache fills against invalidations. generation counts
	// successful submits; a Results call only caches what it computed if no
	// submit landed while it was reading.
	mu         sync.Mutex
	generation uint64
}

// NewService builds a Service. reader and writer may both be nil, in which
// case every call returns ErrNoStore. m may be nil.
func NewService(reader Reader, writer Writer, cfg Config, m *metrics.Metrics, logger *slog.Logger) *Service {
	def := DefaultConfig()
	if cfg.MinSample <= 0 {
		cfg.MinSample = def.MinSample
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		reader:  reader,
		writer:  writer,
		cfg:     cfg,
		cache:   expirable.NewLRU[string, Results](cfg.CacheSize, nil, cfg.CacheTTL),
		metrics: m,
		logger:  logger,
	}
}

// Submit stores one response and returns its id. Cached results for the
// company's affected views are dropped.
func (s *Service) Submit(ctx context.Context, sub Submission) (uuid.UUID, error) {
	if s.writer == nil {
		return uuid.Nil, ErrNoStore
	}
	if strings.TrimSpace(sub.Company) == "" {
		return uuid.Nil, ErrEmptyCompany
	}
	if !sub.Role.Valid() {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidRole, sub.Role)
	}

	answers, err := json.Marshal(nonNil(sub.Answers))
	if err != nil {
		return uuid.Nil, fmt.Errorf("team: encode answers: %w", err)
	}
	var expectations json.RawMessage
	if sub.Role == RoleManager && len(sub.ManagerExpectations) > 0 {
		if expectations, err = json.Marshal(sub.ManagerExpectations); err != nil {
			return uuid.Nil, fmt.Errorf("team: encode expectations: %w", err)
		}
	}

	companyHash := HashCompany(sub.Company)
	teamName := strings.TrimSpace(sub.Team)

	resp, err := s.writer.SubmitResponse(ctx, store.SubmitResponseParams{
		CompanyHash:         companyHash,
		Team:                teamName,
		Role:                string(sub.Role),
		Answers:             answers,
		ManagerExpectations: expectations,
	})
	s.metrics.Submitted(string(sub.Role), err)
	if err != nil {
		return uuid.Nil, fmt.Errorf("team: submit: %w", err)
	}

	s.mu.Lock()
	s.generation++
	s.cache.Remove(cacheKey(companyHash, teamName))
	s.cache.Remove(cacheKey(companyHash, ""))
	s.mu.Unlock()
	return resp.ID, nil
}

// Results aggregates stored responses for company, narrowed to teamName when
// it is non-empty. Fewer than MinSample employee responses yield
// Success=false with the counts.
func (s *Service) Results(ctx context.Context, company, teamName string) (Results, error) {
	if s.reader == nil {
		return Results{}, ErrNoStore
	}
	if strings.TrimSpace(company) == "" {
		return Results{}, ErrEmptyCompany
	}

	companyHash := HashCompany(company)
	teamName = strings.TrimSpace(teamName)
	key := cacheKey(companyHash, teamName)

	if cached, ok := s.cache.Get(key); ok {
		s.metrics.TeamCache(true)
		return cached, nil
	}
	s.metrics.TeamCache(false)

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	rows, err := s.reader.ListResponses(ctx, db.ListResponsesParams{
		CompanyHash: companyHash,
		Team:        sql.NullString{String: teamName, Valid: teamName != ""},
	})
	if err != nil {
		return Results{}, fmt.Errorf("team: list responses: %w", err)
	}

	res := s.aggregate(rows)

	s.mu.Lock()
	if s.generation == gen {
		s.cache.Add(key, res)
	}
	s.mu.Unlock()
	return res, nil
}

// Teams lists a company's named teams.
func (s *Service) Teams(ctx context.Context, company string) ([]TeamSummary, error) {
	if s.reader == nil {
		return nil, ErrNoStore
	}
	if strings.TrimSpace(company) == "" {
		return nil, ErrEmptyCompany
	}

	rows, err := s.reader.ListTeams(ctx, HashCompany(company))
	if err != nil {
		return nil, fmt.Errorf("team: list teams: %w", err)
	}
	out := make([]TeamSummary, len(rows))
	for i, r := range rows {
		out[i] = TeamSummary{
			Name:           r.Team,
			ResponseCount:  int(r.ResponseCount),
			LastResponseAt: r.LastResponseAt,
		}
	}
	return out, nil
}

// ─── AGGREGATION ─────────────────────────────────────────────────────────────

func (s *Service) aggregate(rows []db.Response) Results {
	var employees, expectations []scoring.AnswerSet
	managers := 0

	for _, r := range rows {
		switch Role(r.Role) {
		case RoleEmployee:
			answers, err := decodeAnswers(r.Answers)
			if err != nil {
				s.logger.Warn("team: skipping unreadable response", "response_id", r.ID, "error", err)
				continue
			}
			employees = append(employees, answers)
		case RoleManager:
			managers++
			if !r.ManagerExpectations.Valid {
				continue
			}
			exp, err := decodeAnswers(r.ManagerExpectations.RawMessage)
			if err != nil {
				s.logger.Warn("team: skipping unreadable expectations", "response_id", r.ID, "error", err)
				continue
			}
			expectations = append(expectations, exp)
		}
	}

	res := Results{EmployeeCount: len(employees), ManagerCount: managers}
	if len(employees) < s.cfg.MinSample {
		res.Message = fmt.Sprintf(
			"Nog niet genoeg data: minimaal %d medewerkers nodig, nu %d.",
			s.cfg.MinSample, len(employees),
		)
		return res
	}

	individual, manager := catalog.Individual(), catalog.Manager()

	res.Success = true
	res.EmployeeAvg = scoring.AggregateCategoryAverages(individual, employees)
	res.EmployeeHerzberg = herzbergOf(individual, employees)

	if len(expectations) > 0 {
		res.ManagerAvg = scoring.AggregateCategoryAverages(manager, expectations)
		res.ManagerHerzberg = herzbergOf(manager, expectations)
	}

	res.Advice = scoring.GenerateTeamAdvice(res.EmployeeAvg, res.ManagerAvg)
	return res
}

func herzbergOf(c *catalog.Catalog, sets []scoring.AnswerSet) *Herzberg {
	f := scoring.AggregateFactors(c, sets)
	return &Herzberg{
		Hygiene:   f.Hygiene,
		Motivator: f.Motivator,
		Profile:   scoring.ClassifyProfile(f.Hygiene, f.Motivator, c.ProfileThreshold),
	}
}

func decodeAnswers(raw json.RawMessage) (scoring.AnswerSet, error) {
	var answers scoring.AnswerSet
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func nonNil(a scoring.AnswerSet) scoring.AnswerSet {
	if a == nil {
		return scoring.AnswerSet{}
	}
	return a
}

func cacheKey(companyHash, teamName string) string {
	return companyHash + "\x00" + teamName
}
