package domain

import (
	"fmt"
	"time"
)

// Project is a rural-land certification engagement. Its Steps follow the
// ordered template selected by the service type at creation; FrontierIndex
// points at the first step that is not yet completed.
type Project struct {
	ID            string
	OwnerID       string
	Number        int
	Title         string
	ClientID      string
	ServiceID     string
	FrontierIndex int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Steps is populated by the joined read, ordered by ordinal.
	Steps []*Step
}

// StepByOrdinal returns the step at the given ordinal, or an error when the
// project's loaded step set has no such ordinal.
func (p *Project) StepByOrdinal(ordinal int) (*Step, error) {
	for _, s := range p.Steps {
		if s.Ordinal == ordinal {
			return s, nil
		}
	}
	return nil, fmt.Errorf("project %s has no step with ordinal %d", p.ID, ordinal)
}

// StepByLabel returns the first step carrying the given label, or nil.
func (p *Project) StepByLabel(label string) *Step {
	for _, s := range p.Steps {
		if s.Label == label {
			return s
		}
	}
	return nil
}

// DisplayNumber renders the sequential project number for listings,
// zero-padded to three digits (e.g. "032").
func (p *Project) DisplayNumber() string {
	return fmt.Sprintf("%03d", p.Number)
}
