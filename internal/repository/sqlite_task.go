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

// SQLiteTaskRepo implements TaskRepo using a SQLite database. Rows come
// back in insertion order, which is the order the timeline queries see.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, project_id, name, category, assignee, notes, planned_start, planned_end,
	progress, status, priority, depends_on, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	deps, err := encodeIDs(t.DependsOn)
	if err != nil {
		return err
	}
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Name,
		t.Category,
		t.Assignee,
		t.Notes,
		t.PlannedStart,
		t.PlannedEnd,
		t.Progress,
		string(t.Status),
		string(t.Priority),
		deps,
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY rowid`)
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY rowid`, projectID)
}

func (r *SQLiteTaskRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	deps, err := encodeIDs(t.DependsOn)
	if err != nil {
		return err
	}
	query := `UPDATE tasks SET project_id = ?, name = ?, category = ?, assignee = ?, notes = ?,
		planned_start = ?, planned_end = ?, progress = ?, status = ?, priority = ?, depends_on = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.ProjectID,
		t.Name,
		t.Category,
		t.Assignee,
		t.Notes,
		t.PlannedStart,
		t.PlannedEnd,
		t.Progress,
		string(t.Status),
		string(t.Priority),
		deps,
		formatTimestamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task", t.ID)
}

// UpdateSchedule rewrites only the planned interval of a task.
func (r *SQLiteTaskRepo) UpdateSchedule(ctx context.Context, id string, start, end calendar.Date) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET planned_start = ?, planned_end = ?, updated_at = ? WHERE id = ?`,
		start, end, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating task schedule: %w", err)
	}
	return requireAffected(res, "task", id)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task", id)
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var statusStr, priorityStr, depsStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Category, &t.Assignee, &t.Notes,
		&t.PlannedStart, &t.PlannedEnd,
		&t.Progress, &statusStr, &priorityStr, &depsStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Status = domain.TaskStatus(statusStr)
	t.Priority = domain.Priority(priorityStr)

	if t.DependsOn, err = decodeIDs(depsStr); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &t, nil
}
