package team_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/vibe-scan-backend/internal/db"
	"github.com/nyashahama/vibe-scan-backend/internal/store"
	"github.com/nyashahama/vibe-scan-backend/internal/team"
)

// ─── HashCompany ──────────────────────────────────────────────────────────────

func TestHashCompany_KnownValues(t *testing.T) {
	// Values produced by the existing front-end; stored rows depend on them.
	tests := map[string]string{
		"":                          "company_0",
		"a":                         "company_2p",
		"acme":                      "company_1s1tm",
		"acme corp":                 "company_vjep0w",
		"zorgbedrijf noord-brabant": "company_sp1ann",
		"café ëlan":                 "company_ny1d9p",
		"😀":                         "company_11zz7",
		"İstanbul bv":               "company_shltp5",
		"ΟΔΟΣ":                      "company_hkj20",
	}
	for in, want := range tests {
		assert.Equal(t, want, team.HashCompany(in), "input %q", in)
	}
}

func TestHashCompany_Normalises(t *testing.T) {
	assert.Equal(t, team.HashCompany("acme"), team.HashCompany("  ACME\t"))
	assert.Equal(t, team.HashCompany("acme"), team.HashCompany("\uFEFFacme\u00A0"))
	assert.NotEqual(t, team.HashCompany("acme"), team.HashCompany("\u0085acme"), "NEL is not trimmed")
	assert.NotEqual(t, team.HashCompany("acme"), team.HashCompany("acme corp"))
}

// ─── STUBS ────────────────────────────────────────────────────────────────────

// memStore is an in-memory Reader and Writer.
type memStore struct {
	mu        sync.Mutex
	rows      []db.Response
	listCalls int
	failWrite error

	// afterList runs once, after the next ListResponses has read its rows.
	afterList func()
}

func (m *memStore) SubmitResponse(_ context.Context, p store.SubmitResponseParams) (db.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return db.Response{}, m.failWrite
	}
	r := db.Response{
		ID:          uuid.New(),
		CompanyHash: p.CompanyHash,
		Role:        p.Role,
		Answers:     p.Answers,
		ManagerExpectations: pqtype.NullRawMessage{
			RawMessage: p.ManagerExpectations,
			Valid:      len(p.ManagerExpectations) > 0,
		},
		CreatedAt: time.Now(),
	}
	r.Team.String, r.Team.Valid = p.Team, p.Team != ""
	m.rows = append(m.rows, r)
	return r, nil
}

func (m *memStore) ListResponses(_ context.Context, arg db.ListResponsesParams) ([]db.Response, error) {
	m.mu.Lock()
	m.listCalls++
	var out []db.Response
	for _, r := range m.rows {
		if r.CompanyHash != arg.CompanyHash {
			continue
		}
		if arg.Team.Valid && r.Team.String != arg.Team.String {
			continue
		}
		out = append(out, r)
	}
	hook := m.afterList
	m.afterList = nil
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (m *memStore) ListTeams(_ context.Context, companyHash string) ([]db.TeamDirectory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int32{}
	var order []string
	for _, r := range m.rows {
		if r.CompanyHash != companyHash || !r.Team.Valid {
			continue
		}
		if counts[r.Team.String] == 0 {
			order = append(order, r.Team.String)
		}
		counts[r.Team.String]++
	}
	out := make([]db.TeamDirectory, len(order))
	for i, name := range order {
		out[i] = db.TeamDirectory{CompanyHash: companyHash, Team: name, ResponseCount: counts[name]}
	}
	return out, nil
}

func newService(st *memStore) *team.Service {
	return team.NewService(st, st, team.Config{MinSample: 4, CacheSize: 16, CacheTTL: time.Minute}, nil, nil)
}

func submitEmployees(t *testing.T, svc *team.Service, company, teamName string, n, value int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.Submit(context.Background(), team.Submission{
			Company: company,
			Team:    teamName,
			Role:    team.RoleEmployee,
			Answers: map[string]int{"q1": value, "q2": value},
		})
		require.NoError(t, err)
	}
}

// ─── Submit ───────────────────────────────────────────────────────────────────

func TestSubmit_Validation(t *testing.T) {
	svc := newService(&memStore{})
	ctx := context.Background()

	_, err := svc.Submit(ctx, team.Submission{Company: "  ", Role: team.RoleEmployee})
	assert.ErrorIs(t, err, team.ErrEmptyCompany)

	_, err = svc.Submit(ctx, team.Submission{Company: "Acme", Role: "ceo"})
	assert.ErrorIs(t, err, team.ErrInvalidRole)
}

func TestSubmit_StoresHashedCompanyAndDropsEmployeeExpectations(t *testing.T) {
	st := &memStore{}
	svc := newService(st)

	id, err := svc.Submit(context.Background(), team.Submission{
		Company:             " Acme ",
		Team:                " Sales ",
		Role:                team.RoleEmployee,
		Answers:             map[string]int{"q1": 4},
		ManagerExpectations: map[string]int{"mq1": 5},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.Len(t, st.rows, 1)
	row := st.rows[0]
	assert.Equal(t, "company_1s1tm", row.CompanyHash)
	assert.Equal(t, "Sales", row.Team.String)
	assert.False(t, row.ManagerExpectations.Valid)
	assert.JSONEq(t, `{"q1":4}`, string(row.Answers))
}

func TestSubmit_ManagerKeepsExpectations(t *testing.T) {
	st := &memStore{}
	svc := newService(st)

	_, err := svc.Submit(context.Background(), team.Submission{
		Company:             "Acme",
		Role:                team.RoleManager,
		Answers:             map[string]int{"q1": 3},
		ManagerExpectations: map[string]int{"mq1": 5},
	})
	require.NoError(t, err)
	require.True(t, st.rows[0].ManagerExpectations.Valid)
	assert.JSONEq(t, `{"mq1":5}`, string(st.rows[0].ManagerExpectations.RawMessage))
}

func TestSubmit_WriteFailureIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newService(&memStore{failWrite: boom})

	_, err := svc.Submit(context.Background(), team.Submission{Company: "Acme", Role: team.RoleEmployee})
	assert.ErrorIs(t, err, boom)
}

func TestNoStore(t *testing.T) {
	svc := team.NewService(nil, nil, team.Config{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, team.Submission{Company: "Acme", Role: team.RoleEmployee})
	assert.ErrorIs(t, err, team.ErrNoStore)
	_, err = svc.Results(ctx, "Acme", "")
	assert.ErrorIs(t, err, team.ErrNoStore)
	_, err = svc.Teams(ctx, "Acme")
	assert.ErrorIs(t, err, team.ErrNoStore)
}

// ─── Results ──────────────────────────────────────────────────────────────────

func TestResults_BelowMinimumSample(t *testing.T) {
	svc := newService(&memStore{})
	submitEmployees(t, svc, "Acme", "", 3, 4)

	res, err := svc.Results(context.Background(), "Acme", "")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 3, res.EmployeeCount)
	assert.Contains(t, res.Message, "minimaal 4")
	assert.Nil(t, res.EmployeeAvg)
	assert.Nil(t, res.EmployeeHerzberg)
}

func TestResults_EmployeesOnly(t *testing.T) {
	svc := newService(&memStore{})
	submitEmployees(t, svc, "Acme", "", 4, 4)

	res, err := svc.Results(context.Background(), "acme", "")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 4, res.EmployeeCount)
	assert.Zero(t, res.ManagerCount)
	assert.Equal(t, map[string]float64{"Voice & Autonomy": 4.0}, res.EmployeeAvg)
	assert.Nil(t, res.ManagerAvg)
	assert.Nil(t, res.ManagerHerzberg)
	require.NotNil(t, res.EmployeeHerzberg)
	assert.NotEmpty(t, res.Advice)
}

func TestResults_ManagerGapAdvice(t *testing.T) {
	svc := newService(&memStore{})
	ctx := context.Background()
	submitEmployees(t, svc, "Acme", "Ops", 4, 2)

	_, err := svc.Submit(ctx, team.Submission{
		Company:             "Acme",
		Team:                "Ops",
		Role:                team.RoleManager,
		Answers:             map[string]int{"q1": 3},
		ManagerExpectations: map[string]int{"mq1": 5, "mq2": 4},
	})
	require.NoError(t, err)

	res, err := svc.Results(ctx, "Acme", "Ops")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 1, res.ManagerCount)
	assert.Equal(t, 4.5, res.ManagerAvg["Voice & Autonomy"])
	require.NotNil(t, res.ManagerHerzberg)

	require.Len(t, res.Advice, 1)
	assert.True(t, strings.HasPrefix(res.Advice[0], "Voice & Autonomy: "))
	assert.Contains(t, res.Advice[0], "positieve bias")
}

func TestResults_TeamFilter(t *testing.T) {
	svc := newService(&memStore{})
	submitEmployees(t, svc, "Acme", "A", 4, 5)
	submitEmployees(t, svc, "Acme", "B", 2, 1)

	a, err := svc.Results(context.Background(), "Acme", "A")
	require.NoError(t, err)
	assert.True(t, a.Success)
	assert.Equal(t, 5.0, a.EmployeeAvg["Voice & Autonomy"])

	b, err := svc.Results(context.Background(), "Acme", "B")
	require.NoError(t, err)
	assert.False(t, b.Success)
	assert.Equal(t, 2, b.EmployeeCount)

	all, err := svc.Results(context.Background(), "Acme", "")
	require.NoError(t, err)
	assert.Equal(t, 6, all.EmployeeCount)
}

func TestResults_SkipsUnreadableRows(t *testing.T) {
	st := &memStore{}
	svc := newService(st)
	submitEmployees(t, svc, "Acme", "", 4, 3)
	st.rows = append(st.rows, db.Response{
		ID:          uuid.New(),
		CompanyHash: team.HashCompany("Acme"),
		Role:        "employee",
		Answers:     json.RawMessage(`not json`),
	})

	res, err := svc.Results(context.Background(), "Acme", "")
	require.NoError(t, err)
	assert.Equal(t, 4, res.EmployeeCount)
}

func TestResults_CachedUntilNextSubmit(t *testing.T) {
	st := &memStore{}
	svc := newService(st)
	ctx := context.Background()
	submitEmployees(t, svc, "Acme", "A", 4, 4)

	_, err := svc.Results(ctx, "Acme", "A")
	require.NoError(t, err)
	_, err = svc.Results(ctx, "Acme", "A")
	require.NoError(t, err)
	assert.Equal(t, 1, st.listCalls, "second read served from cache")

	submitEmployees(t, svc, "Acme", "A", 1, 4)
	res, err := svc.Results(ctx, "Acme", "A")
	require.NoError(t, err)
	assert.Equal(t, 2, st.listCalls)
	assert.Equal(t, 5, res.EmployeeCount)
}

func TestResults_SubmitDuringReadIsNotCached(t *testing.T) {
	st := &memStore{}
	svc := newService(st)
	ctx := context.Background()
	submitEmployees(t, svc, "Acme", "A", 4, 4)

	st.afterList = func() { submitEmployees(t, svc, "Acme", "A", 1, 4) }
	res, err := svc.Results(ctx, "Acme", "A")
	require.NoError(t, err)
	assert.Equal(t, 4, res.EmployeeCount, "read finished before the submit")

	res, err = svc.Results(ctx, "Acme", "A")
	require.NoError(t, err)
	assert.Equal(t, 2, st.listCalls, "stale result must not be served from cache")
	assert.Equal(t, 5, res.EmployeeCount)
}

// ─── Teams ────────────────────────────────────────────────────────────────────

func TestTeams(t *testing.T) {
	svc := newService(&memStore{})
	submitEmployees(t, svc, "Acme", "A", 2, 3)
	submitEmployees(t, svc, "Acme", "B", 1, 3)
	submitEmployees(t, svc, "Acme", "", 1, 3)
	submitEmployees(t, svc, "Other", "C", 1, 3)

	teams, err := svc.Teams(context.Background(), "ACME")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "A", teams[0].Name)
	assert.Equal(t, 2, teams[0].ResponseCount)
	assert.Equal(t, "B", teams[1].Name)
}

// ─── Role ─────────────────────────────────────────────────────────────────────

func TestRole(t *testing.T) {
	assert.True(t, team.RoleEmployee.Valid())
	assert.True(t, team.RoleManager.Valid())
	assert.False(t, team.Role("").Valid())
	assert.False(t, team.Role("ceo").Valid())
}
