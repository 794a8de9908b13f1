package db

import (
	"context"
)

const listTeams = `-- name: ListTeams :many
SELECT company_hash, team, response_count, last_response_at
FROM team_directory
WHERE company_hash = $1 AND team <> ''
ORDER BY team
`

func (q *Queries) ListTeams(ctx context.Context, companyHash string) ([]TeamDirectory, error) {
	rows, err := q.query(ctx, q.listTeamsStmt, listTeams, companyHash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TeamDirectory
	for rows.Next() {
		var i TeamDirectory
		if err := rows.Scan(
			&i.CompanyHash,
			&i.Team,
			&i.ResponseCount,
			&i.LastResponseAt,
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

const upsertTeamDirectory = `-- name: UpsertTeamDirectory :one
INSERT INTO team_directory (company_hash, team, response_count, last_response_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (company_hash, team) DO UPDATE
SET response_count   = team_directory.response_count + 1,
    last_response_at = now()
RETURNING company_hash, team, response_count, last_response_at
`

type UpsertTeamDirectoryParams struct {
	CompanyHash string `json:"company_hash"`
	Team        string `json:"team"`
}

func (q *Queries) UpsertTeamDirectory(ctx context.Context, arg UpsertTeamDirectoryParams) (TeamDirectory, error) {
	row := q.queryRow(ctx, q.upsertTeamDirectoryStmt, upsertTeamDirectory, arg.CompanyHash, arg.Team)
	var i TeamDirectory
	err := row.Scan(
		&i.CompanyHash,
		&i.Team,
		&i.ResponseCount,
		&i.LastResponseAt,
	)
	return i, err
}
