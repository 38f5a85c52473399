package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/docseq"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/policy"
	"github.com/rmaciel/fundiario/internal/repository"
)

type documentService struct {
	steps     repository.StepRepo
	projects  repository.ProjectRepo
	sequences repository.DocumentSequenceRepo
}

// NewDocumentService creates the document-number assignment service.
func NewDocumentService(
	steps repository.StepRepo,
	projects repository.ProjectRepo,
	sequences repository.DocumentSequenceRepo,
) DocumentService {
	return &documentService{steps: steps, projects: projects, sequences: sequences}
}

// NumberFor returns the step's document number, allocating and persisting
// one on first use. Allocation reserves the value atomically, so the
// number handed to a rendering session is stable and never duplicated by a
// concurrent caller.
func (s *documentService) NumberFor(ctx context.Context, stepID string) (string, error) {
	step, err := s.steps.GetByID(ctx, stepID)
	if err != nil {
		return "", db.Normalize(err)
	}
	if step.DocumentNumber != nil {
		return *step.DocumentNumber, nil
	}
	if !step.HasDocument {
		return "", fmt.Errorf("step %q carries no document", step.Label)
	}

	project, err := s.projects.GetByID(ctx, step.ProjectID)
	if err != nil {
		return "", db.Normalize(err)
	}

	year := time.Now().UTC().Year()
	seq, err := s.sequences.NextDocumentSeq(ctx, project.OwnerID, step.Label, year)
	if err != nil {
		return "", db.Normalize(err)
	}

	number := docseq.Format(seq, year)
	step.DocumentNumber = &number
	step.UpdatedAt = time.Now().UTC()
	if err := s.steps.Update(ctx, step); err != nil {
		return "", db.Normalize(err)
	}
	return number, nil
}

// SetNumber is the explicit edit path for a caller-supplied number.
func (s *documentService) SetNumber(ctx context.Context, actor domain.Actor, stepID, number string) error {
	if err := policy.Check(actor.Role, policy.OpStepTransition, stepID); err != nil {
		return err
	}
	if _, _, ok := docseq.Parse(number); !ok {
		return fmt.Errorf("document number %q does not match the NNNN/YYYY format", number)
	}
	step, err := s.steps.GetByID(ctx, stepID)
	if err != nil {
		return db.Normalize(err)
	}
	step.DocumentNumber = &number
	step.UpdatedAt = time.Now().UTC()
	if err := s.steps.Update(ctx, step); err != nil {
		return db.Normalize(err)
	}
	return nil
}
