package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
	"github.com/nyashahama/vibe-scan-backend/internal/scoring"
	"github.com/nyashahama/vibe-scan-backend/internal/team"
)

// ─── POST /api/responses ──────────────────────────────────────────────────────
//
// Every respondent answers the individual questionnaire ("q" keys); managers
// additionally send manager_expectations on the manager questionnaire ("mq"
// keys), which is scored separately. The submission is stored for team
// aggregation. Storage failure does not fail the request:
// the respondent still receives their analysis, with submitted=false and a
// notice the client can show.

type submitRequest struct {
	Company             string         `json:"company" validate:"required,max=200"`
	Team                string         `json:"team" validate:"max=100"`
	Role                string         `json:"role" validate:"required,oneof=employee manager"`
	Answers             map[string]int `json:"answers" validate:"required,min=1,dive,min=1,max=5"`
	ManagerExpectations map[string]int `json:"manager_expectations,omitempty" validate:"omitempty,dive,min=1,max=5"`
}

type submitResponse struct {
	Submitted    bool              `json:"submitted"`
	ResponseID   *uuid.UUID        `json:"response_id,omitempty"`
	Notice       string            `json:"notice,omitempty"`
	Analysis     scoring.Analysis  `json:"analysis"`
	Expectations *scoring.Analysis `json:"expectations,omitempty"`
}

const submitFailedNotice = "Je resultaten konden niet worden opgeslagen voor het teamoverzicht. Je persoonlijke resultaten blijven beschikbaar."

func (s *Server) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decode(w, r, &req) {
		return
	}
	if !s.valid(w, req) {
		return
	}

	role := team.Role(req.Role)
	analysis := scoring.Analyze(catalog.Individual(), req.Answers)
	s.metrics.Scored(analysis.Variant, "http")

	var expectations *scoring.Analysis
	if role == team.RoleManager && len(req.ManagerExpectations) > 0 {
		a := scoring.Analyze(catalog.Manager(), req.ManagerExpectations)
		s.metrics.Scored(a.Variant, "http")
		expectations = &a
	}

	id, err := s.teams.Submit(r.Context(), team.Submission{
		Company:             req.Company,
		Team:                req.Team,
		Role:                role,
		Answers:             req.Answers,
		ManagerExpectations: req.ManagerExpectations,
	})

	switch {
	case err == nil:
		respond(w, http.StatusOK, submitResponse{
			Submitted:    true,
			ResponseID:   &id,
			Analysis:     analysis,
			Expectations: expectations,
		})

	case errors.Is(err, team.ErrEmptyCompany), errors.Is(err, team.ErrInvalidRole):
		respondErr(w, http.StatusBadRequest, err.Error())

	default:
		s.logger.Warn("response not stored",
			"error", err,
			"role", req.Role,
			"request_id", middleware.GetReqID(r.Context()),
		)
		respond(w, http.StatusOK, submitResponse{
			Submitted:    false,
			Notice:       submitFailedNotice,
			Analysis:     analysis,
			Expectations: expectations,
		})
	}
}
