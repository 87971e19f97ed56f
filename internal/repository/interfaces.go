package repository

import (
	"context"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdateSchedule(ctx context.Context, id string, start, end calendar.Date) error
	Delete(ctx context.Context, id string) error
}

type WorkLogRepo interface {
	Create(ctx context.Context, w *domain.WorkLog) error
	GetByID(ctx context.Context, id string) (*domain.WorkLog, error)
	List(ctx context.Context) ([]*domain.WorkLog, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.WorkLog, error)
	ListInPeriod(ctx context.Context, p calendar.Period) ([]*domain.WorkLog, error)
	Delete(ctx context.Context, id string) error
	DeleteByTask(ctx context.Context, taskID string) (int64, error)
}

type AdhocRepo interface {
	Create(ctx context.Context, a *domain.AdhocTask) error
	GetByID(ctx context.Context, id string) (*domain.AdhocTask, error)
	List(ctx context.Context) ([]*domain.AdhocTask, error)
	ListInPeriod(ctx context.Context, p calendar.Period) ([]*domain.AdhocTask, error)
	Delete(ctx context.Context, id string) error
}

type PreferencesRepo interface {
	Get(ctx context.Context) (*domain.UIPreferences, error)
	Upsert(ctx context.Context, p *domain.UIPreferences) error
}
