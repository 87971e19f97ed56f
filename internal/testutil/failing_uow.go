package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ganttline/internal/db"
)

// ErrInjected is returned by FailOnNthExecUoW when Err is nil.
var ErrInjected = errors.New("injected write failure")

// FailOnNthExecUoW behaves like the SQLite unit of work except that the
// FailOn-th write statement inside the transaction fails. Writes are
// counted from 1; reads are never counted. It lets tests prove that a
// multi-table operation leaves nothing behind when a late write breaks.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	injected := u.Err
	if injected == nil {
		injected = ErrInjected
	}
	if err := fn(ctx, &countingTx{DBTX: tx, failOn: u.FailOn, err: injected}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type countingTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.writes++
	if c.writes == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
