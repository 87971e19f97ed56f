package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/importer"
	"github.com/alexanderramin/ganttline/internal/repository"
)

type importService struct {
	state    StateService
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(state StateService, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{state: state, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string, replace bool) (*ImportResult, error) {
	rec, err := importer.LoadRecord(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportRecord(ctx, rec, replace)
}

func (s *importService) ImportRecord(ctx context.Context, rec *importer.Record, replace bool) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"replace": replace}
	defer func() {
		if result != nil {
			fields["projects"] = result.Projects
			fields["tasks"] = result.Tasks
			fields["dangling"] = len(result.Dangling)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateRecord(rec); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	state := importer.ToState(rec, time.Now())

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if replace {
			return repository.ReplaceState(ctx, tx, state)
		}
		return repository.AppendState(ctx, tx, state)
	})
	if err != nil {
		return nil, fmt.Errorf("writing imported state: %w", err)
	}

	stored, err := s.state.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &ImportResult{
		Projects:   len(state.Projects),
		Tasks:      len(state.Tasks),
		WorkLogs:   len(state.WorkLogs),
		AdhocTasks: len(state.AdhocTasks),
		Replaced:   replace,
		Dangling:   stored.DanglingReferences(),
	}, nil
}

func (s *importService) Export(ctx context.Context) (*importer.Record, error) {
	state, err := s.state.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return importer.FromState(state), nil
}

// ImportValidationError collects every problem found in an import record.
type ImportValidationError struct {
	Errs []error
}

func (e *ImportValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(e.Errs))
	for _, err := range e.Errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *ImportValidationError) Unwrap() []error { return e.Errs }

func formatValidationErrors(errs []error) error {
	return &ImportValidationError{Errs: errs}
}
