package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/policy"
	"github.com/rmaciel/fundiario/internal/repository"
	"github.com/rmaciel/fundiario/internal/workflow"
)

type projectService struct {
	projects repository.ProjectRepo
	clients  repository.ClientRepo
	services repository.ServiceTypeRepo
	uow      db.UnitOfWork
}

// NewProjectService creates the project lifecycle service.
func NewProjectService(
	projects repository.ProjectRepo,
	clients repository.ClientRepo,
	services repository.ServiceTypeRepo,
	uow db.UnitOfWork,
) ProjectService {
	return &projectService{
		projects: projects,
		clients:  clients,
		services: services,
		uow:      uow,
	}
}

// Create assigns the sequential project number, selects the workflow
// variant by service name, and writes the project with its full step set
// in one transaction. Ordinal 0 starts IN_PROGRESS.
func (s *projectService) Create(ctx context.Context, actor domain.Actor, p *domain.Project) error {
	if err := policy.Check(actor.Role, policy.OpProjectCreate, p.Title); err != nil {
		return err
	}
	if p.Title == "" {
		return fmt.Errorf("project title is required")
	}
	if _, err := s.clients.GetByID(ctx, p.ClientID); err != nil {
		return db.Normalize(err)
	}
	svcType, err := s.services.GetByID(ctx, p.ServiceID)
	if err != nil {
		return db.Normalize(err)
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.OwnerID == "" {
		p.OwnerID = actor.ID
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.FrontierIndex = 0

	template := workflow.TemplateFor(svcType.Name)
	steps := workflow.BuildSteps(p.ID, template, now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		number, err := repository.NewSQLiteDocumentSequenceRepo(tx).NextProjectNumber(ctx, p.OwnerID)
		if err != nil {
			return err
		}
		p.Number = number

		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, p); err != nil {
			return err
		}
		stepRepo := repository.NewSQLiteStepRepo(tx)
		for _, step := range steps {
			if err := stepRepo.Create(ctx, step); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return db.Normalize(err)
	}
	p.Steps = steps
	return nil
}

func (s *projectService) GetWithSteps(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetWithSteps(ctx, id)
	if err != nil {
		return nil, db.Normalize(err)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx, ownerID)
	if err != nil {
		return nil, db.Normalize(err)
	}
	return projects, nil
}

func (s *projectService) ListWithSteps(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	projects, err := s.projects.ListWithSteps(ctx, ownerID)
	if err != nil {
		return nil, db.Normalize(err)
	}
	return projects, nil
}

// Delete removes the project and its dependents in a fixed topological
// order: steps, appointments, transactions, then the project row. The
// schema enforces the same cascade; the explicit order is kept so a future
// storage change cannot silently alter the semantics.
func (s *projectService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := policy.Check(actor.Role, policy.OpProjectDelete, id); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return db.Normalize(err)
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteStepRepo(tx).DeleteByProject(ctx, id); err != nil {
			return err
		}
		if err := repository.NewSQLiteAppointmentRepo(tx).DeleteByProject(ctx, id); err != nil {
			return err
		}
		if err := repository.NewSQLiteTransactionRepo(tx).DeleteByProject(ctx, id); err != nil {
			return err
		}
		return repository.NewSQLiteProjectRepo(tx).Delete(ctx, id)
	})
	if err != nil {
		return db.Normalize(err)
	}
	return nil
}
