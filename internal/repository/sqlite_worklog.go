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

// SQLiteWorkLogRepo implements WorkLogRepo using a SQLite database.
type SQLiteWorkLogRepo struct {
	db db.DBTX
}

// NewSQLiteWorkLogRepo creates a new SQLiteWorkLogRepo.
func NewSQLiteWorkLogRepo(conn db.DBTX) *SQLiteWorkLogRepo {
	return &SQLiteWorkLogRepo{db: conn}
}

const workLogColumns = `id, task_id, date, note, hours, progress_after, created_at`

func (r *SQLiteWorkLogRepo) Create(ctx context.Context, w *domain.WorkLog) error {
	query := `INSERT INTO work_logs (` + workLogColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.TaskID,
		w.Date,
		w.Note,
		nullableFloatToValue(w.Hours),
		nullableIntToValue(w.ProgressAfter),
		formatTimestamp(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work log: %w", err)
	}
	return nil
}

func (r *SQLiteWorkLogRepo) GetByID(ctx context.Context, id string) (*domain.WorkLog, error) {
	query := `SELECT ` + workLogColumns + ` FROM work_logs WHERE id = ?`
	w, err := scanWorkLog(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("work log %s: %w", id, ErrNotFound)
	}
	return w, err
}

func (r *SQLiteWorkLogRepo) List(ctx context.Context) ([]*domain.WorkLog, error) {
	return r.query(ctx, `SELECT `+workLogColumns+` FROM work_logs ORDER BY rowid`)
}

func (r *SQLiteWorkLogRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.WorkLog, error) {
	return r.query(ctx, `SELECT `+workLogColumns+` FROM work_logs WHERE task_id = ? ORDER BY date, rowid`, taskID)
}

// ListInPeriod relies on ISO dates sorting lexically.
func (r *SQLiteWorkLogRepo) ListInPeriod(ctx context.Context, p calendar.Period) ([]*domain.WorkLog, error) {
	p = p.Normalize()
	return r.query(ctx, `SELECT `+workLogColumns+` FROM work_logs WHERE date BETWEEN ? AND ? ORDER BY date, rowid`,
		p.From, p.To)
}

func (r *SQLiteWorkLogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work log: %w", err)
	}
	return requireAffected(res, "work log", id)
}

func (r *SQLiteWorkLogRepo) DeleteByTask(ctx context.Context, taskID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_logs WHERE task_id = ?`, taskID)
	if err != nil {
		return 0, fmt.Errorf("deleting work logs for task: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteWorkLogRepo) query(ctx context.Context, query string, args ...any) ([]*domain.WorkLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.WorkLog
	for rows.Next() {
		w, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work logs: %w", err)
	}
	return logs, nil
}

func scanWorkLog(row rowScanner) (*domain.WorkLog, error) {
	var w domain.WorkLog
	var hours sql.NullFloat64
	var progress sql.NullInt64
	var createdAtStr string

	err := row.Scan(&w.ID, &w.TaskID, &w.Date, &w.Note, &hours, &progress, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work log: %w", err)
	}
	w.Hours = floatPtr(hours)
	w.ProgressAfter = intPtr(progress)
	if w.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	return &w, nil
}
