package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork) ProjectService {
	return &projectService{projects: projects, uow: uow}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	if err := p.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteTaskRepo(tx).CountByProject(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("project %s has %d tasks: %w", domain.ShortID(id), n, domain.ErrProjectInUse)
		}
		return repository.NewSQLiteProjectRepo(tx).Delete(ctx, id)
	})
}
