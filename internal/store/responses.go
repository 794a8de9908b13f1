package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/nyashahama/vibe-scan-backend/internal/db"
)

// ─── INPUT TYPES ─────────────────────────────────────────────────────────────

// SubmitResponseParams is one anonymous submission. Team may be empty.
// ManagerExpectations is nil for employees.
type SubmitResponseParams struct {
	CompanyHash         string
	Team                string
	Role                string
	Answers             json.RawMessage
	ManagerExpectations json.RawMessage
}

// ─── METHODS ─────────────────────────────────────────────────────────────────

// SubmitResponse inserts the response and bumps the team directory counter in
// one transaction, so the counter never disagrees with the stored rows.
func (s *Store) SubmitResponse(ctx context.Context, p SubmitResponseParams) (db.Response, error) {
	var resp db.Response

	err := s.withTx(ctx, func(ctx context.Context, q db.Querier) error {
		var err error
		resp, err = q.InsertResponse(ctx, db.InsertResponseParams{
			ID:          uuid.New(),
			CompanyHash: p.CompanyHash,
			Team: sql.NullString{
				String: p.Team,
				Valid:  p.Team != "",
			},
			Role:    p.Role,
			Answers: p.Answers,
			ManagerExpectations: pqtype.NullRawMessage{
				RawMessage: p.ManagerExpectations,
				Valid:      len(p.ManagerExpectations) > 0,
			},
		})
		if err != nil {
			return fmt.Errorf("SubmitResponse: insert: %w", err)
		}

		if _, err := q.UpsertTeamDirectory(ctx, db.UpsertTeamDirectoryParams{
			CompanyHash: p.CompanyHash,
			Team:        p.Team,
		}); err != nil {
			return fmt.Errorf("SubmitResponse: team directory: %w", err)
		}
		return nil
	})

	return resp, err
}
