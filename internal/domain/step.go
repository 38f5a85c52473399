package domain

import "time"

// Step is one entry of a project's workflow. Ordinal is unique within the
// project and matches the position in the service's step template. Notes is
// free text but is occasionally repurposed to hold structured JSON (a saved
// budget sheet, a document checklist).
type Step struct {
	ID             string
	ProjectID      string
	Ordinal        int
	Label          string
	HasDocument    bool
	Status         StepStatus
	Notes          string
	DocumentNumber *string
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Completed reports whether the step has reached its terminal status.
func (s *Step) Completed() bool {
	return s.Status == StepCompleted
}
