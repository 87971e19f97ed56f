package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// SQLitePreferencesRepo implements PreferencesRepo using a SQLite database.
type SQLitePreferencesRepo struct {
	db db.DBTX
}

// NewSQLitePreferencesRepo creates a new SQLitePreferencesRepo.
func NewSQLitePreferencesRepo(conn db.DBTX) *SQLitePreferencesRepo {
	return &SQLitePreferencesRepo{db: conn}
}

func (r *SQLitePreferencesRepo) Get(ctx context.Context) (*domain.UIPreferences, error) {
	query := `SELECT gantt_zoom, theme, day_width FROM ui_preferences WHERE id = 'default'`
	var p domain.UIPreferences
	var zoom string
	err := r.db.QueryRowContext(ctx, query).Scan(&zoom, &p.Theme, &p.DayWidth)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ui preferences: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning ui preferences: %w", err)
	}
	p.GanttZoom = domain.GanttZoom(zoom)
	return &p, nil
}

func (r *SQLitePreferencesRepo) Upsert(ctx context.Context, p *domain.UIPreferences) error {
	query := `INSERT OR REPLACE INTO ui_preferences (id, gantt_zoom, theme, day_width) VALUES ('default', ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, string(p.GanttZoom), p.Theme, p.DayWidth); err != nil {
		return fmt.Errorf("upserting ui preferences: %w", err)
	}
	return nil
}
