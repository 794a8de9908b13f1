// Package store wraps db.Querier with transaction support and groups the
// multi-step write operations that must execute atomically.
//
// Single-query reads (ListResponses, ListTeams) are called directly on
// db.Querier through Q().
//
// Dependency rule: store imports db only. It never imports api, team or
// scoring.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/nyashahama/vibe-scan-backend/internal/db"
)

// Store holds a *sql.DB for starting transactions and a db.Querier for
// executing queries outside of transactions.
type Store struct {
	// pool is the raw connection pool, used only to begin transactions.
	pool *sql.DB

	// q is the Querier used for non-transactional calls.
	q db.Querier
}

// New creates a Store from a live connection pool. The pool must already be
// open and verified (e.g. via db.PingContext) before calling New.
func New(pool *sql.DB, q db.Querier) *Store {
	return &Store{pool: pool, q: q}
}

// Q exposes the underlying Querier for single-query reads.
//
//	rows, err := s.Q().ListResponses(ctx, params)
func (s *Store) Q() db.Querier {
	return s.q
}

// maxTxAttempts bounds retries of a transaction that Postgres aborted with a
// serialization failure.
const maxTxAttempts = 3

// txQuerier is a function that receives a transactional Querier and returns an
// error. Returning a non-nil error causes withTx to roll back automatically.
type txQuerier func(ctx context.Context, q db.Querier) error

// withTx begins a transaction, passes a Querier scoped to that transaction to
// fn, and commits on success or rolls back on any error (including panics).
//
// Serializable isolation keeps the response row and its team counter in step
// under concurrent submissions for the same team.
func (s *Store) withTx(ctx context.Context, fn txQuerier) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (s *Store) runTx(ctx context.Context, fn txQuerier) error {
	tx, err := s.pool.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}

	// Roll back on panic so the connection is never left in a broken state.
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p) // re-panic after rollback
		}
	}()

	// db.Queries.WithTx re-uses prepared statements scoped to the transaction.
	txQ := s.q.(*db.Queries).WithTx(tx)

	if err := fn(ctx, txQ); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			// Wrap both errors so the caller sees both failure reasons.
			return fmt.Errorf("store: fn error: %w; rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit transaction: %w", err)
	}
	return nil
}
// isSerializationFailure reports whether err is SQLSTATE 40001.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}
