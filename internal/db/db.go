// Package db is the query layer over Postgres, written in the shape sqlc
// produces: a DBTX abstraction, a Queries type holding prepared statements and
// a Querier interface that handlers and tests depend on.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

// Schema is the DDL applied by Migrate. Every statement is idempotent.
//
//go:embed schema.sql
var Schema string

// DBTX is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New returns Queries that run unprepared statements against db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Prepare prepares every statement up front, which validates the SQL against
// the live schema at startup.
func Prepare(ctx context.Context, db DBTX) (*Queries, error) {
	q := Queries{db: db}
	var err error
	if q.insertResponseStmt, err = db.PrepareContext(ctx, insertResponse); err != nil {
		return nil, fmt.Errorf("error preparing query InsertResponse: %w", err)
	}
	if q.listResponsesStmt, err = db.PrepareContext(ctx, listResponses); err != nil {
		return nil, fmt.Errorf("error preparing query ListResponses: %w", err)
	}
	if q.listTeamsStmt, err = db.PrepareContext(ctx, listTeams); err != nil {
		return nil, fmt.Errorf("error preparing query ListTeams: %w", err)
	}
	if q.upsertTeamDirectoryStmt, err = db.PrepareContext(ctx, upsertTeamDirectory); err != nil {
		return nil, fmt.Errorf("error preparing query UpsertTeamDirectory: %w", err)
	}
	return &q, nil
}

// Migrate applies Schema.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}

// Close releases every prepared statement.
func (q *Queries) Close() error {
	var err error
	for _, stmt := range []*sql.Stmt{
		q.insertResponseStmt,
		q.listResponsesStmt,
		q.listTeamsStmt,
		q.upsertTeamDirectoryStmt,
	} {
		if stmt == nil {
			continue
		}
		if cerr := stmt.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing statement: %w", cerr)
		}
	}
	return err
}

func (q *Queries) exec(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) (sql.Result, error) {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).ExecContext(ctx, args...)
	case stmt != nil:
		return stmt.ExecContext(ctx, args...)
	default:
		return q.db.ExecContext(ctx, query, args...)
	}
}

func (q *Queries) query(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) (*sql.Rows, error) {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).QueryContext(ctx, args...)
	case stmt != nil:
		return stmt.QueryContext(ctx, args...)
	default:
		return q.db.QueryContext(ctx, query, args...)
	}
}

func (q *Queries) queryRow(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) *sql.Row {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).QueryRowContext(ctx, args...)
	case stmt != nil:
		return stmt.QueryRowContext(ctx, args...)
	default:
		return q.db.QueryRowContext(ctx, query, args...)
	}
}

// Queries implements Querier.
type Queries struct {
	db                      DBTX
	tx                      *sql.Tx
	insertResponseStmt      *sql.Stmt
	listResponsesStmt       *sql.Stmt
	listTeamsStmt           *sql.Stmt
	upsertTeamDirectoryStmt *sql.Stmt
}

// WithTx returns Queries bound to tx. Prepared statements are re-bound to the
// transaction on use.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db:                      tx,
		tx:                      tx,
		insertResponseStmt:      q.insertResponseStmt,
		listResponsesStmt:       q.listResponsesStmt,
		listTeamsStmt:           q.listTeamsStmt,
		upsertTeamDirectoryStmt: q.upsertTeamDirectoryStmt,
	}
}
