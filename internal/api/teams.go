package api

import (
	"errors"
	"net/http"

	"github.com/nyashahama/vibe-scan-backend/internal/team"
)

// ─── GET /api/teams?company= ──────────────────────────────────────────────────

type teamsQuery struct {
	Company string `query:"company" validate:"required,max=200"`
}

type teamsResponse struct {
	Teams []team.TeamSummary `json:"teams"`
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	q := teamsQuery{Company: r.URL.Query().Get("company")}
	if !s.valid(w, q) {
		return
	}

	teams, err := s.teams.Teams(r.Context(), q.Company)
	if err != nil {
		s.respondTeamErr(w, r, err)
		return
	}
	if teams == nil {
		teams = []team.TeamSummary{}
	}
	respond(w, http.StatusOK, teamsResponse{Teams: teams})
}

// ─── GET /api/team-results?company=&team= ─────────────────────────────────────
//
// Insufficient data is a normal result: 200 with success=false and counts.

type teamResultsQuery struct {
	Company string `query:"company" validate:"required,max=200"`
	Team    string `query:"team" validate:"max=100"`
}

func (s *Server) handleTeamResults(w http.ResponseWriter, r *http.Request) {
	q := teamResultsQuery{
		Company: r.URL.Query().Get("company"),
		Team:    r.URL.Query().Get("team"),
	}
	if !s.valid(w, q) {
		return
	}

	res, err := s.teams.Results(r.Context(), q.Company, q.Team)
	if err != nil {
		s.respondTeamErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, res)
}

func (s *Server) respondTeamErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, team.ErrNoStore):
		respondErr(w, http.StatusServiceUnavailable, "team results are not available on this server")
	case errors.Is(err, team.ErrEmptyCompany):
		respondErr(w, http.StatusBadRequest, err.Error())
	default:
		s.respondInternalErr(w, r, err)
	}
}
