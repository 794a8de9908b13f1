// Package team implements anonymous team aggregation: storing individual
// responses under a hashed company identifier and turning a team's stored
// answer sets into employee/manager comparisons behind a minimum-sample gate.
package team

import (
	"errors"
	"time"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
	"github.com/nyashahama/vibe-scan-backend/internal/scoring"
)

// ─── TYPES ───────────────────────────────────────────────────────────────────

// Role is the respondent's position in the team.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleManager
}

// Submission is one respondent's contribution. Answers are always on the
// individual catalog, whatever the role. ManagerExpectations holds a
// manager's estimate of how their team experiences each manager-catalog
// question; it is dropped for employees.
type Submission struct {
	Company             string
	Team                string
	Role                Role
	Answers             scoring.AnswerSet
	ManagerExpectations scoring.AnswerSet
}

// Herzberg is an aggregate factor pair with its profile.
type Herzberg struct {
	Hygiene   float64         `json:"hygiene_score"`
	Motivator float64         `json:"motivator_score"`
	Profile   catalog.Profile `json:"profile"`
}

// Results is the dashboard view for a company, optionally narrowed to a team.
// When Success is false only the counts and Message are set.
type Results struct {
	Success          bool               `json:"success"`
	Message          string             `json:"message,omitempty"`
	EmployeeCount    int                `json:"employee_count"`
	ManagerCount     int                `json:"manager_count"`
	EmployeeAvg      map[string]float64 `json:"employee_avg,omitempty"`
	ManagerAvg       map[string]float64 `json:"manager_avg,omitempty"`
	EmployeeHerzberg *Herzberg          `json:"employee_herzberg,omitempty"`
	ManagerHerzberg  *Herzberg          `json:"manager_herzberg,omitempty"`
	Advice           []string           `json:"advice,omitempty"`
}

// TeamSummary is one entry of a company's team directory.
type TeamSummary struct {
	Name           string    `json:"name"`
	ResponseCount  int       `json:"response_count"`
	LastResponseAt time.Time `json:"last_response_at"`
}

// ─── ERRORS ──────────────────────────────────────────────────────────────────

var (
	// ErrNoStore is returned when the service runs without persistence.
	ErrNoStore = errors.New("team: no response store configured")

	ErrEmptyCompany = errors.New("team: company must not be empty")
	ErrInvalidRole  = errors.New("team: role must be employee or manager")
)
