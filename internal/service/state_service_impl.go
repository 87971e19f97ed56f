package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/alexanderramin/ganttline/internal/timeline"
)

type stateService struct {
	reader db.SnapshotReader
	prefs  repository.PreferencesRepo
}

// NewStateService loads aggregates through reader. Snapshot must not be
// called from inside another transaction on an in-memory store.
func NewStateService(reader db.SnapshotReader, prefs repository.PreferencesRepo) StateService {
	return &stateService{reader: reader, prefs: prefs}
}

func (s *stateService) Snapshot(ctx context.Context) (*domain.AppState, error) {
	var state *domain.AppState
	err := s.reader.ReadSnapshot(ctx, func(ctx context.Context, q db.DBTX) error {
		var err error
		state, err = repository.LoadState(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *stateService) Summary(ctx context.Context, today calendar.Date) (timeline.Summary, error) {
	state, err := s.Snapshot(ctx)
	if err != nil {
		return timeline.Summary{}, err
	}
	return timeline.Summarize(state.Tasks, today), nil
}

func (s *stateService) Preferences(ctx context.Context) (*domain.UIPreferences, error) {
	p, err := s.prefs.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		def := domain.DefaultUIPreferences()
		return &def, nil
	}
	return p, err
}

func (s *stateService) SavePreferences(ctx context.Context, p *domain.UIPreferences) error {
	if !p.GanttZoom.Valid() {
		return &domain.ValidationError{Field: "ganttZoomLevel", Message: fmt.Sprintf("unknown zoom %q", p.GanttZoom)}
	}
	if p.DayWidth <= 0 {
		return &domain.ValidationError{Field: "dayWidth", Message: "day width must be positive"}
	}
	return s.prefs.Upsert(ctx, p)
}
