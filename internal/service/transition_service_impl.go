package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/audit"
	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/notify"
	"github.com/rmaciel/fundiario/internal/policy"
	"github.com/rmaciel/fundiario/internal/repository"
	"github.com/rmaciel/fundiario/internal/workflow"
)

// auditActionStepApproval tags the audit trail entry written for every
// step completion.
const auditActionStepApproval = "step approval"

type transitionService struct {
	steps    repository.StepRepo
	projects repository.ProjectRepo
	services repository.ServiceTypeRepo
	budgets  BudgetService
	finance  FinanceService
	auditor  audit.BestEffort
	notifier notify.Notifier
	observer UseCaseObserver
}

// NewTransitionService creates the step transition engine.
func NewTransitionService(
	steps repository.StepRepo,
	projects repository.ProjectRepo,
	services repository.ServiceTypeRepo,
	budgets BudgetService,
	finance FinanceService,
	auditor audit.BestEffort,
	notifier notify.Notifier,
	observer UseCaseObserver,
) TransitionService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &transitionService{
		steps:    steps,
		projects: projects,
		services: services,
		budgets:  budgets,
		finance:  finance,
		auditor:  auditor,
		notifier: notifier,
		observer: observer,
	}
}

func (s *transitionService) Transition(ctx context.Context, actor domain.Actor, req TransitionRequest) (*domain.Step, error) {
	started := time.Now()
	step, err := s.transition(ctx, actor, req)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "step_transition",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"step_id": req.StepID, "status": string(req.Status)},
		StartedAt: started,
	})
	return step, err
}

func (s *transitionService) transition(ctx context.Context, actor domain.Actor, req TransitionRequest) (*domain.Step, error) {
	if err := policy.Check(actor.Role, policy.OpStepTransition, req.StepID); err != nil {
		return nil, err
	}
	if !domain.ValidStepStatuses[req.Status] {
		return nil, fmt.Errorf("invalid step status %q", req.Status)
	}

	step, err := s.steps.GetByID(ctx, req.StepID)
	if err != nil {
		return nil, db.Normalize(err)
	}
	project, err := s.projects.GetByID(ctx, step.ProjectID)
	if err != nil {
		return nil, db.Normalize(err)
	}

	oldPayload := marshalStep(step)
	now := time.Now().UTC()

	step.Status = req.Status
	if req.Notes != nil {
		step.Notes = *req.Notes
	}
	if req.DocumentNumber != nil {
		step.DocumentNumber = req.DocumentNumber
	}
	if req.Status == domain.StepCompleted {
		step.CompletedAt = &now
	} else {
		step.CompletedAt = nil
	}
	step.UpdatedAt = now

	// The approval trail entry goes in before the step write commits.
	if req.Status == domain.StepCompleted {
		s.auditor.Record(ctx, audit.Entry{
			Action:    auditActionStepApproval,
			TableName: "steps",
			RecordID:  step.ID,
			OldData:   oldPayload,
			NewData:   marshalStep(step),
			CreatedAt: now,
		})
	}

	if err := s.steps.Update(ctx, step); err != nil {
		return nil, db.Normalize(err)
	}

	if err := s.recomputeFrontier(ctx, project, now); err != nil {
		return nil, err
	}

	switch req.Status {
	case domain.StepWaitingApproval:
		s.notifier.Notify(fmt.Sprintf("Aprovação solicitada: %s", step.Label), notify.SeverityInfo)
	case domain.StepCompleted:
		s.notifier.Notify(fmt.Sprintf("Etapa concluída: %s", step.Label), notify.SeveritySuccess)
	}

	if req.Status == domain.StepCompleted && step.Label == workflow.LabelReceipt {
		if err := s.deriveReceipt(ctx, project, now); err != nil {
			return nil, err
		}
	}

	return step, nil
}

// recomputeFrontier runs on every transition, not only on completion. The
// project row is touched either way: frontier plus updated_at when the
// frontier moved, updated_at alone when it did not.
func (s *transitionService) recomputeFrontier(ctx context.Context, project *domain.Project, now time.Time) error {
	steps, err := s.steps.ListByProject(ctx, project.ID)
	if err != nil {
		return db.Normalize(err)
	}
	svcType, err := s.services.GetByID(ctx, project.ServiceID)
	if err != nil {
		return db.Normalize(err)
	}

	frontier := workflow.Frontier(steps, len(workflow.TemplateFor(svcType.Name)))
	if frontier != project.FrontierIndex {
		project.FrontierIndex = frontier
	}
	project.UpdatedAt = now
	if err := s.projects.Update(ctx, project); err != nil {
		return db.Normalize(err)
	}
	return nil
}

func (s *transitionService) deriveReceipt(ctx context.Context, project *domain.Project, now time.Time) error {
	total, err := s.budgets.TotalFor(ctx, project.ID)
	if err != nil {
		return err
	}
	if _, err := s.finance.RealizeReceipt(ctx, project, total, now); err != nil {
		return err
	}
	return nil
}

// marshalStep renders the audit payload. Failures degrade to an empty
// payload rather than blocking the transition.
func marshalStep(s *domain.Step) string {
	raw, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(raw)
}
