package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateCompletedStatus(db); err != nil {
		return fmt.Errorf("backfilling completed task status: %w", err)
	}
	return nil
}

// Projects, tasks, work logs and ad-hoc tasks reference each other only
// weakly. Imported data may carry dangling IDs, so there are no foreign keys
// between these tables; cascades are done by the repositories.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		owner       TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		end_date    TEXT,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('planned','active','completed','on_hold')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		project_id    TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL,
		assignee      TEXT NOT NULL DEFAULT '',
		notes         TEXT NOT NULL DEFAULT '',
		planned_start TEXT NOT NULL,
		planned_end   TEXT NOT NULL,
		progress      INTEGER NOT NULL DEFAULT 0
		              CHECK(progress BETWEEN 0 AND 100),
		status        TEXT NOT NULL DEFAULT 'not_started'
		              CHECK(status IN ('not_started','in_progress','completed','on_hold')),
		priority      TEXT NOT NULL DEFAULT 'medium'
		              CHECK(priority IN ('high','medium','low')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_planned_end ON tasks(planned_end)`,

	`CREATE TABLE IF NOT EXISTS work_logs (
		id             TEXT PRIMARY KEY,
		task_id        TEXT NOT NULL,
		date           TEXT NOT NULL,
		note           TEXT NOT NULL,
		hours          REAL,
		progress_after INTEGER,
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_logs_task ON work_logs(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_logs_date ON work_logs(date)`,

	`CREATE TABLE IF NOT EXISTS adhoc_tasks (
		id                 TEXT PRIMARY KEY,
		date               TEXT NOT NULL,
		title              TEXT NOT NULL,
		detail             TEXT NOT NULL DEFAULT '',
		hours              REAL,
		related_project_id TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_adhoc_tasks_date ON adhoc_tasks(date)`,

	`CREATE TABLE IF NOT EXISTS ui_preferences (
		id         TEXT PRIMARY KEY DEFAULT 'default',
		gantt_zoom TEXT NOT NULL DEFAULT 'day' CHECK(gantt_zoom IN ('day','week')),
		theme      TEXT NOT NULL DEFAULT 'dark',
		day_width  INTEGER NOT NULL DEFAULT 3
	)`,

	// Seed default preferences
	`INSERT OR IGNORE INTO ui_preferences (id) VALUES ('default')`,

	// Task category and dependency list
	`ALTER TABLE tasks ADD COLUMN category TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE tasks ADD COLUMN depends_on TEXT NOT NULL DEFAULT '[]'`,
}

// migrateCompletedStatus marks tasks at 100% as completed. Rows written
// before progress drove status could disagree.
func migrateCompletedStatus(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(),
		`UPDATE tasks SET status = 'completed' WHERE progress = 100 AND status != 'completed'`)
	return err
}
