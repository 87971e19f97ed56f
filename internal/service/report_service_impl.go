package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/ganttline/internal/report"
)

type reportService struct {
	state    StateService
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewReportService builds reports from state snapshots. Dangling references
// a report touches are logged at warn level on logger, which may be nil.
func NewReportService(state StateService, logger *slog.Logger, observers ...UseCaseObserver) ReportService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &reportService{state: state, logger: logger, observer: useCaseObserverOrNoop(observers)}
}

func (s *reportService) Build(ctx context.Context, opts report.Options) (r *report.Report, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"from":     opts.From.String(),
		"to":       opts.To.String(),
		"projects": len(opts.ProjectIDs),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "build-report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	state, err := s.state.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	r, err = report.Build(state, opts)
	if err != nil {
		return nil, err
	}
	for _, ref := range r.Warnings {
		s.logger.WarnContext(ctx, "dangling reference",
			"kind", string(ref.Kind),
			"source_id", ref.SourceID,
			"target_id", ref.TargetID,
		)
	}
	fields["completed"] = len(r.Completed)
	fields["in_progress"] = len(r.InProgress)
	fields["delayed"] = len(r.Delayed)
	fields["warnings"] = len(r.Warnings)
	return r, nil
}

func (s *reportService) Generate(ctx context.Context, opts report.Options, labels report.Labels) (string, error) {
	r, err := s.Build(ctx, opts)
	if errors.Is(err, report.ErrInvalidOptions) {
		return report.RenderError(err, labels), nil
	}
	if err != nil {
		return "", err
	}
	return report.Render(r, labels), nil
}
