package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// LoadState reads every collection into an AppState, preserving insertion
// order. Missing preferences fall back to the defaults.
func LoadState(ctx context.Context, conn db.DBTX) (*domain.AppState, error) {
	state := domain.NewAppState()

	projects, err := NewSQLiteProjectRepo(conn).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	for _, p := range projects {
		state.Projects = append(state.Projects, *p)
	}

	tasks, err := NewSQLiteTaskRepo(conn).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	for _, t := range tasks {
		state.Tasks = append(state.Tasks, *t)
	}

	logs, err := NewSQLiteWorkLogRepo(conn).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading work logs: %w", err)
	}
	for _, w := range logs {
		state.WorkLogs = append(state.WorkLogs, *w)
	}

	adhoc, err := NewSQLiteAdhocRepo(conn).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading adhoc tasks: %w", err)
	}
	for _, a := range adhoc {
		state.AdhocTasks = append(state.AdhocTasks, *a)
	}

	prefs, err := NewSQLitePreferencesRepo(conn).Get(ctx)
	switch {
	case err == nil:
		state.UIPreferences = *prefs
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("loading ui preferences: %w", err)
	}

	return state, nil
}

// ReplaceState wipes every collection and writes state in its order.
// Callers run it inside a transaction.
func ReplaceState(ctx context.Context, conn db.DBTX, state *domain.AppState) error {
	for _, table := range []string{"work_logs", "adhoc_tasks", "tasks", "projects"} {
		if _, err := conn.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return AppendState(ctx, conn, state)
}

// AppendState inserts every record of state without touching existing rows.
func AppendState(ctx context.Context, conn db.DBTX, state *domain.AppState) error {
	projects := NewSQLiteProjectRepo(conn)
	for i := range state.Projects {
		if err := projects.Create(ctx, &state.Projects[i]); err != nil {
			return err
		}
	}
	tasks := NewSQLiteTaskRepo(conn)
	for i := range state.Tasks {
		if err := tasks.Create(ctx, &state.Tasks[i]); err != nil {
			return err
		}
	}
	logs := NewSQLiteWorkLogRepo(conn)
	for i := range state.WorkLogs {
		if err := logs.Create(ctx, &state.WorkLogs[i]); err != nil {
			return err
		}
	}
	adhoc := NewSQLiteAdhocRepo(conn)
	for i := range state.AdhocTasks {
		if err := adhoc.Create(ctx, &state.AdhocTasks[i]); err != nil {
			return err
		}
	}
	prefs := state.UIPreferences
	if prefs.GanttZoom == "" {
		prefs = domain.DefaultUIPreferences()
	}
	return NewSQLitePreferencesRepo(conn).Upsert(ctx, &prefs)
}
