package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const insertResponse = `-- name: InsertResponse :one
INSERT INTO responses (id, company_hash, team, role, answers, manager_expectations)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, company_hash, team, role, answers, manager_expectations, created_at
`

type InsertResponseParams struct {
	ID                  uuid.UUID             `json:"id"`
	CompanyHash         string                `json:"company_hash"`
	Team                sql.NullString        `json:"team"`
	Role                string                `json:"role"`
	Answers             json.RawMessage       `json:"answers"`
	ManagerExpectations pqtype.NullRawMessage `json:"manager_expectations"`
}

func (q *Queries) InsertResponse(ctx context.Context, arg InsertResponseParams) (Response, error) {
	row := q.queryRow(ctx, q.insertResponseStmt, insertResponse,
		arg.ID,
		arg.CompanyHash,
		arg.Team,
		arg.Role,
		arg.Answers,
		arg.ManagerExpectations,
	)
	var i Response
	err := row.Scan(
		&i.ID,
		&i.CompanyHash,
		&i.Team,
		&i.Role,
		&i.Answers,
		&i.ManagerExpectations,
		&i.CreatedAt,
	)
	return i, err
}

const listResponses = `-- name: ListResponses :many
SELECT id, company_hash, team, role, answers, manager_expectations, created_at
FROM responses
WHERE company_hash = $1
  AND ($2::text IS NULL OR team = $2::text)
ORDER BY created_at, id
`

type ListResponsesParams struct {
	CompanyHash string         `json:"company_hash"`
	Team        sql.NullString `json:"team"`
}

func (q *Queries) ListResponses(ctx context.Context, arg ListResponsesParams) ([]Response, error) {
	rows, err := q.query(ctx, q.listResponsesStmt, listResponses, arg.CompanyHash, arg.Team)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Response
	for rows.Next() {
		var i Response
		if err := rows.Scan(
			&i.ID,
			&i.CompanyHash,
			&i.Team,
			&i.Role,
			&i.Answers,
			&i.ManagerExpectations,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
