package repository

import (
	"context"
	"time"

	"github.com/rmaciel/fundiario/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// GetWithSteps attaches the project's ordered step collection.
	GetWithSteps(ctx context.Context, id string) (*domain.Project, error)
	// ListWithSteps is the joined read: every project of the owner with its
	// step collection attached, ordered by project number.
	ListWithSteps(ctx context.Context, ownerID string) ([]*domain.Project, error)
	List(ctx context.Context, ownerID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type StepRepo interface {
	Create(ctx context.Context, s *domain.Step) error
	GetByID(ctx context.Context, id string) (*domain.Step, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Step, error)
	Update(ctx context.Context, s *domain.Step) error
	DeleteByProject(ctx context.Context, projectID string) error
}

type TransactionRepo interface {
	Create(ctx context.Context, t *domain.FinancialTransaction) error
	GetByID(ctx context.Context, id string) (*domain.FinancialTransaction, error)
	List(ctx context.Context, ownerID string) ([]*domain.FinancialTransaction, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.FinancialTransaction, error)
	Update(ctx context.Context, t *domain.FinancialTransaction) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, ownerID string) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ServiceTypeRepo interface {
	Create(ctx context.Context, s *domain.ServiceType) error
	GetByID(ctx context.Context, id string) (*domain.ServiceType, error)
	List(ctx context.Context, ownerID string) ([]*domain.ServiceType, error)
	Update(ctx context.Context, s *domain.ServiceType) error
	Delete(ctx context.Context, id string) error
}

type AccountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, ownerID string) ([]*domain.Account, error)
	Delete(ctx context.Context, id string) error
}

type AppointmentRepo interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, ownerID string) ([]*domain.Appointment, error)
	ListOnDay(ctx context.Context, ownerID string, day time.Time) ([]*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
}

// DocumentSequenceRepo owns the atomic (owner, label, year) counters used
// for document numbers and, under a reserved label, project numbers.
// Allocation is reserve-on-read: two concurrent callers can never receive
// the same value.
type DocumentSequenceRepo interface {
	NextDocumentSeq(ctx context.Context, ownerID, label string, year int) (int, error)
	NextProjectNumber(ctx context.Context, ownerID string) (int, error)
}

// ReminderMarkRepo claims the persisted per-owner, per-day reminder marker.
type ReminderMarkRepo interface {
	// Claim returns true exactly once per (owner, day) across processes.
	Claim(ctx context.Context, ownerID string, day time.Time) (bool, error)
}
