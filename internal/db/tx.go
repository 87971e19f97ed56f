package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is what repositories run statements against: the *sql.DB for
// autocommit work or the *sql.Tx handed out by a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork groups writes that span tables, such as removing a task with
// its work logs or importing a record. A callback error or panic leaves
// the store as it was.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SnapshotReader runs a batch of reads against one consistent view, so an
// AppState loaded table by table never mixes before and after a write.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(ctx context.Context, q DBTX) error) error
}

// SQLiteUnitOfWork serves both interfaces from one *sql.DB. With a single
// pooled connection (in-memory databases) callbacks must use the DBTX they
// are given, never the outer *sql.DB, or they block on themselves.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

var (
	_ UnitOfWork     = (*SQLiteUnitOfWork)(nil)
	_ SnapshotReader = (*SQLiteUnitOfWork)(nil)
)

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn returns nil.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, fn, true)
}

// ReadSnapshot always rolls back; fn's writes, if any, are discarded.
func (u *SQLiteUnitOfWork) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, q DBTX) error) error {
	return u.run(ctx, fn, false)
}

func (u *SQLiteUnitOfWork) run(ctx context.Context, fn func(ctx context.Context, tx DBTX) error, commit bool) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	err = fn(ctx, tx)
	if err == nil && commit {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}
		return nil
	}
	if rbErr := tx.Rollback(); rbErr != nil {
		return errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
	}
	return err
}
