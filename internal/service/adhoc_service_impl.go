package service

import (
	"context"
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/google/uuid"
)

type adhocService struct {
	adhoc repository.AdhocRepo
}

func NewAdhocService(adhoc repository.AdhocRepo) AdhocService {
	return &adhocService{adhoc: adhoc}
}

func (s *adhocService) Create(ctx context.Context, a *domain.AdhocTask) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if err := a.Validate(); err != nil {
		return err
	}
	a.CreatedAt = time.Now().UTC()
	return s.adhoc.Create(ctx, a)
}

func (s *adhocService) List(ctx context.Context) ([]*domain.AdhocTask, error) {
	return s.adhoc.List(ctx)
}

func (s *adhocService) ListInPeriod(ctx context.Context, p calendar.Period) ([]*domain.AdhocTask, error) {
	return s.adhoc.ListInPeriod(ctx, p)
}

func (s *adhocService) Delete(ctx context.Context, id string) error {
	return s.adhoc.Delete(ctx, id)
}
