package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/budget"
	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/policy"
	"github.com/rmaciel/fundiario/internal/repository"
	"github.com/rmaciel/fundiario/internal/workflow"
	"github.com/shopspring/decimal"
)

type budgetService struct {
	projects repository.ProjectRepo
	steps    repository.StepRepo
	services repository.ServiceTypeRepo
	catalog  *budget.Catalog
}

// NewBudgetService creates the budget resolution service. catalog may be
// empty; seeding then falls through to the legacy per-service list.
func NewBudgetService(
	projects repository.ProjectRepo,
	steps repository.StepRepo,
	services repository.ServiceTypeRepo,
	catalog *budget.Catalog,
) BudgetService {
	if catalog == nil {
		catalog = &budget.Catalog{}
	}
	return &budgetService{projects: projects, steps: steps, services: services, catalog: catalog}
}

// SheetFor resolves the project's budget sheet: the saved sheet from the
// budget step when present and well formed, otherwise a freshly seeded
// item list with zero adjustment.
func (s *budgetService) SheetFor(ctx context.Context, projectID string) (*budget.Sheet, error) {
	project, err := s.projects.GetWithSteps(ctx, projectID)
	if err != nil {
		return nil, db.Normalize(err)
	}
	svcType, err := s.services.GetByID(ctx, project.ServiceID)
	if err != nil {
		return nil, db.Normalize(err)
	}

	notes := ""
	if step := project.StepByLabel(workflow.LabelBudget); step != nil {
		notes = step.Notes
	}
	if sheet, ok := budget.ParseSheet(notes); ok {
		return sheet, nil
	}
	return &budget.Sheet{
		Items:      budget.Seed(notes, s.catalog, svcType.BasePrice),
		Adjustment: decimal.Zero,
	}, nil
}

func (s *budgetService) TotalFor(ctx context.Context, projectID string) (decimal.Decimal, error) {
	sheet, err := s.SheetFor(ctx, projectID)
	if err != nil {
		return decimal.Zero, err
	}
	return sheet.Total(), nil
}

// SaveSheet persists the sheet as JSON in the budget step's notes.
func (s *budgetService) SaveSheet(ctx context.Context, actor domain.Actor, projectID string, sheet *budget.Sheet) error {
	if err := policy.Check(actor.Role, policy.OpStepTransition, projectID); err != nil {
		return err
	}
	if err := sheet.Validate(); err != nil {
		return err
	}

	project, err := s.projects.GetWithSteps(ctx, projectID)
	if err != nil {
		return db.Normalize(err)
	}
	step := project.StepByLabel(workflow.LabelBudget)
	if step == nil {
		return fmt.Errorf("project %s has no budget step", projectID)
	}

	encoded, err := sheet.Marshal()
	if err != nil {
		return err
	}
	step.Notes = encoded
	step.UpdatedAt = time.Now().UTC()
	if err := s.steps.Update(ctx, step); err != nil {
		return db.Normalize(err)
	}
	return nil
}
