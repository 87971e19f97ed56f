package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/google/uuid"
)

type workLogService struct {
	logs     repository.WorkLogRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewWorkLogService(logs repository.WorkLogRepo, uow db.UnitOfWork, observers ...UseCaseObserver) WorkLogService {
	return &workLogService{logs: logs, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *workLogService) Log(ctx context.Context, w *domain.WorkLog) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": w.TaskID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-work",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if err := w.Validate(); err != nil {
		return err
	}
	w.CreatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		task, err := tasks.GetByID(ctx, w.TaskID)
		if err != nil {
			return fmt.Errorf("logging work: %w", err)
		}
		if err := repository.NewSQLiteWorkLogRepo(tx).Create(ctx, w); err != nil {
			return err
		}
		if w.ProgressAfter == nil {
			return nil
		}
		task.SetProgress(*w.ProgressAfter)
		task.UpdatedAt = w.CreatedAt
		fields["progress_after"] = task.Progress
		return tasks.Update(ctx, task)
	})
}

func (s *workLogService) List(ctx context.Context, taskID string) ([]*domain.WorkLog, error) {
	if taskID == "" {
		return s.logs.List(ctx)
	}
	return s.logs.ListByTask(ctx, taskID)
}

func (s *workLogService) ListInPeriod(ctx context.Context, p calendar.Period) ([]*domain.WorkLog, error) {
	return s.logs.ListInPeriod(ctx, p)
}

func (s *workLogService) Delete(ctx context.Context, id string) error {
	return s.logs.Delete(ctx, id)
}
