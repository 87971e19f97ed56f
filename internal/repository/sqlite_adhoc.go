package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// SQLiteAdhocRepo implements AdhocRepo using a SQLite database.
type SQLiteAdhocRepo struct {
	db db.DBTX
}

// NewSQLiteAdhocRepo creates a new SQLiteAdhocRepo.
func NewSQLiteAdhocRepo(conn db.DBTX) *SQLiteAdhocRepo {
	return &SQLiteAdhocRepo{db: conn}
}

const adhocColumns = `id, date, title, detail, hours, related_project_id, created_at`

func (r *SQLiteAdhocRepo) Create(ctx context.Context, a *domain.AdhocTask) error {
	query := `INSERT INTO adhoc_tasks (` + adhocColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Date,
		a.Title,
		a.Detail,
		nullableFloatToValue(a.Hours),
		a.RelatedProjectID,
		formatTimestamp(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting adhoc task: %w", err)
	}
	return nil
}

func (r *SQLiteAdhocRepo) GetByID(ctx context.Context, id string) (*domain.AdhocTask, error) {
	query := `SELECT ` + adhocColumns + ` FROM adhoc_tasks WHERE id = ?`
	a, err := scanAdhoc(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("adhoc task %s: %w", id, ErrNotFound)
	}
	return a, err
}

func (r *SQLiteAdhocRepo) List(ctx context.Context) ([]*domain.AdhocTask, error) {
	return r.query(ctx, `SELECT `+adhocColumns+` FROM adhoc_tasks ORDER BY rowid`)
}

func (r *SQLiteAdhocRepo) ListInPeriod(ctx context.Context, p calendar.Period) ([]*domain.AdhocTask, error) {
	p = p.Normalize()
	return r.query(ctx, `SELECT `+adhocColumns+` FROM adhoc_tasks WHERE date BETWEEN ? AND ? ORDER BY date, rowid`,
		p.From, p.To)
}

func (r *SQLiteAdhocRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM adhoc_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting adhoc task: %w", err)
	}
	return requireAffected(res, "adhoc task", id)
}

func (r *SQLiteAdhocRepo) query(ctx context.Context, query string, args ...any) ([]*domain.AdhocTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing adhoc tasks: %w", err)
	}
	defer rows.Close()

	var out []*domain.AdhocTask
	for rows.Next() {
		a, err := scanAdhoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating adhoc tasks: %w", err)
	}
	return out, nil
}

func scanAdhoc(row rowScanner) (*domain.AdhocTask, error) {
	var a domain.AdhocTask
	var hours sql.NullFloat64
	var createdAtStr string

	err := row.Scan(&a.ID, &a.Date, &a.Title, &a.Detail, &hours, &a.RelatedProjectID, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning adhoc task: %w", err)
	}
	a.Hours = floatPtr(hours)
	if a.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	return &a, nil
}
