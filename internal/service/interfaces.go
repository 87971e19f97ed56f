package service

import (
	"context"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/importer"
	"github.com/alexanderramin/ganttline/internal/report"
	"github.com/alexanderramin/ganttline/internal/timeline"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// Delete refuses with domain.ErrProjectInUse while tasks reference the project.
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetProgress(ctx context.Context, id string, progress int) (*domain.Task, error)
	// Shift resolves a drag gesture of deltaDays against the stored task and persists it.
	Shift(ctx context.Context, id string, deltaDays int, mode timeline.DragMode) (*domain.Task, error)
	// ApplyDraft persists the dates of a finished drag.
	ApplyDraft(ctx context.Context, id string, draft timeline.DragDraft) (*domain.Task, error)
	// Delete removes the task and its work logs together.
	Delete(ctx context.Context, id string) (removedLogs int64, err error)
}

type WorkLogService interface {
	// Log records w. A set ProgressAfter also updates the task's progress.
	Log(ctx context.Context, w *domain.WorkLog) error
	List(ctx context.Context, taskID string) ([]*domain.WorkLog, error)
	ListInPeriod(ctx context.Context, p calendar.Period) ([]*domain.WorkLog, error)
	Delete(ctx context.Context, id string) error
}

type AdhocService interface {
	Create(ctx context.Context, a *domain.AdhocTask) error
	List(ctx context.Context) ([]*domain.AdhocTask, error)
	ListInPeriod(ctx context.Context, p calendar.Period) ([]*domain.AdhocTask, error)
	Delete(ctx context.Context, id string) error
}

type StateService interface {
	// Snapshot loads the whole AppState aggregate.
	Snapshot(ctx context.Context) (*domain.AppState, error)
	Summary(ctx context.Context, today calendar.Date) (timeline.Summary, error)
	Preferences(ctx context.Context) (*domain.UIPreferences, error)
	SavePreferences(ctx context.Context, p *domain.UIPreferences) error
}

type ReportService interface {
	Build(ctx context.Context, opts report.Options) (*report.Report, error)
	// Generate renders the report text. Invalid options yield an error
	// section in the text, not an error.
	Generate(ctx context.Context, opts report.Options, labels report.Labels) (string, error)
}

// ImportResult holds the outcome of a record import.
type ImportResult struct {
	Projects   int
	Tasks      int
	WorkLogs   int
	AdhocTasks int
	Replaced   bool
	Dangling   []domain.DanglingReference
}

type ImportService interface {
	ImportFile(ctx context.Context, path string, replace bool) (*ImportResult, error)
	ImportRecord(ctx context.Context, rec *importer.Record, replace bool) (*ImportResult, error)
	Export(ctx context.Context) (*importer.Record, error)
}
