package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
	"github.com/nyashahama/vibe-scan-backend/internal/scoring"
)

// ─── GET /api/catalogs/:variant ───────────────────────────────────────────────
//
// Returns the questionnaire for a variant: questions in id order and the
// categories with their presentation metadata. Band advice is not included;
// it is returned alongside scores.

type categoryView struct {
	Name  string `json:"name"`
	Short string `json:"short"`
	Color string `json:"color"`
}

type catalogResponse struct {
	Variant          string             `json:"variant"`
	KeyPrefix        string             `json:"key_prefix"`
	ProfileThreshold float64            `json:"profile_threshold"`
	Categories       []categoryView     `json:"categories"`
	Questions        []catalog.Question `json:"questions"`
}

func newCatalogResponse(c *catalog.Catalog) catalogResponse {
	cats := make([]categoryView, len(c.Categories))
	for i, cat := range c.Categories {
		cats[i] = categoryView{Name: cat.Name, Short: cat.Short, Color: cat.Color}
	}
	return catalogResponse{
		Variant:          c.Variant,
		KeyPrefix:        c.KeyPrefix,
		ProfileThreshold: c.ProfileThreshold,
		Categories:       cats,
		Questions:        c.Questions,
	}
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalogParam(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, newCatalogResponse(c))
}

// ─── POST /api/score/:variant ─────────────────────────────────────────────────
//
// Stateless scoring. Nothing is stored. Unknown answer keys are accepted and
// ignored by the engine; values outside 1–5 are rejected.

type scoreRequest struct {
	Answers map[string]int `json:"answers" validate:"dive,min=1,max=5"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalogParam(w, r)
	if !ok {
		return
	}

	var req scoreRequest
	if !decode(w, r, &req) {
		return
	}
	if !s.valid(w, req) {
		return
	}

	analysis := scoring.Analyze(c, req.Answers)
	s.metrics.Scored(c.Variant, "http")
	respond(w, http.StatusOK, analysis)
}

// catalogParam resolves the {variant} URL parameter. Writes 404 and returns
// false for unknown variants.
func (s *Server) catalogParam(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	c, err := catalog.ByVariant(chi.URLParam(r, "variant"))
	if errors.Is(err, catalog.ErrUnknownVariant) {
		respondErr(w, http.StatusNotFound, "unknown catalog variant")
		return nil, false
	}
	if err != nil {
		s.respondInternalErr(w, r, err)
		return nil, false
	}
	return c, true
}
