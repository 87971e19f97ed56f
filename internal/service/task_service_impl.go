package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TaskService {
	return &taskService{tasks: tasks, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.SetProgress(t.Progress)
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, projectID string) ([]*domain.Task, error) {
	if projectID == "" {
		return s.tasks.List(ctx)
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) SetProgress(ctx context.Context, id string, progress int) (*domain.Task, error) {
	var task *domain.Task
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTaskRepo(tx)
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		t.SetProgress(progress)
		t.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	return task, err
}

func (s *taskService) Shift(ctx context.Context, id string, deltaDays int, mode timeline.DragMode) (task *domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": id, "delta_days": deltaDays, "mode": string(mode)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "shift-task",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTaskRepo(tx)
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		draft, err := timeline.ResolveDragDates(*t, deltaDays, mode)
		if err != nil {
			return err
		}
		if err := repo.UpdateSchedule(ctx, id, draft.Start, draft.End); err != nil {
			return err
		}
		t.PlannedStart, t.PlannedEnd = draft.Start, draft.End
		task = t
		return nil
	})
	return task, err
}

func (s *taskService) ApplyDraft(ctx context.Context, id string, draft timeline.DragDraft) (task *domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": id, "start": draft.Start.String(), "end": draft.End.String()}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "apply-drag",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if draft.Start.IsZero() || draft.End.IsZero() || draft.End.Before(draft.Start) {
		return nil, &domain.ValidationError{
			Field:   "plannedEnd",
			Message: fmt.Sprintf("draft %s..%s is not an ordered interval", draft.Start, draft.End),
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTaskRepo(tx)
		if err := repo.UpdateSchedule(ctx, id, draft.Start, draft.End); err != nil {
			return err
		}
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		task = t
		return nil
	})
	return task, err
}

func (s *taskService) Delete(ctx context.Context, id string) (removed int64, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteWorkLogRepo(tx).DeleteByTask(ctx, id)
		if err != nil {
			return err
		}
		if err := repository.NewSQLiteTaskRepo(tx).Delete(ctx, id); err != nil {
			return err
		}
		removed = n
		return nil
	})
	return removed, err
}
