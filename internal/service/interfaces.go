package service

import (
	"context"
	"time"

	"github.com/rmaciel/fundiario/internal/budget"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/shopspring/decimal"
)

// TransitionRequest carries one step status change. Notes and
// DocumentNumber are applied only when non-nil.
type TransitionRequest struct {
	StepID         string
	Status         domain.StepStatus
	Notes          *string
	DocumentNumber *string
}

// TransitionService is the step transition engine: it applies one status
// change, recomputes the project frontier, and triggers the dependent
// effects (audit, notification, receipt-step financial derivation).
type TransitionService interface {
	Transition(ctx context.Context, actor domain.Actor, req TransitionRequest) (*domain.Step, error)
}

// FinanceService derives ledger entries from business events and guards
// direct ledger writes.
type FinanceService interface {
	// RealizeTransfer turns a transfer request into its EXPENSE/INCOME
	// pair, atomically: a mid-pair failure leaves no rows.
	RealizeTransfer(ctx context.Context, actor domain.Actor, req domain.TransferRequest) ([]*domain.FinancialTransaction, error)
	// RealizeReceipt synthesizes the paid service income for an approved
	// receipt step.
	RealizeReceipt(ctx context.Context, project *domain.Project, total decimal.Decimal, effectiveDate time.Time) (*domain.FinancialTransaction, error)
	Create(ctx context.Context, actor domain.Actor, t *domain.FinancialTransaction) error
	Update(ctx context.Context, actor domain.Actor, t *domain.FinancialTransaction) error
	Delete(ctx context.Context, actor domain.Actor, id string) error
	List(ctx context.Context, ownerID string) ([]*domain.FinancialTransaction, error)
}

type ProjectService interface {
	Create(ctx context.Context, actor domain.Actor, p *domain.Project) error
	GetWithSteps(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, ownerID string) ([]*domain.Project, error)
	ListWithSteps(ctx context.Context, ownerID string) ([]*domain.Project, error)
	// Delete cascades dependents in fixed order (steps, appointments,
	// transactions) before the project row, inside one transaction.
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// DocumentService owns document-number assignment: lazy allocation on
// first use, stable thereafter.
type DocumentService interface {
	NumberFor(ctx context.Context, stepID string) (string, error)
	SetNumber(ctx context.Context, actor domain.Actor, stepID, number string) error
}

// BudgetService resolves and persists the budget sheet attached to a
// project's budget step.
type BudgetService interface {
	SheetFor(ctx context.Context, projectID string) (*budget.Sheet, error)
	TotalFor(ctx context.Context, projectID string) (decimal.Decimal, error)
	SaveSheet(ctx context.Context, actor domain.Actor, projectID string, sheet *budget.Sheet) error
}

// Snapshot is a caller's refreshed view of the data set. Primary sets are
// always present; secondary sets may be missing when the load was cut
// short, flagged by Partial.
type Snapshot struct {
	Projects     []*domain.Project
	Clients      []*domain.Client
	Transactions []*domain.FinancialTransaction
	Accounts     []*domain.Account
	Services     []*domain.ServiceType
	Appointments []*domain.Appointment
	Partial      bool
}

type SnapshotService interface {
	Load(ctx context.Context, ownerID string) (*Snapshot, error)
}

// ReminderService returns today's appointments at most once per owner per
// day, across restarts and concurrent sessions.
type ReminderService interface {
	DueToday(ctx context.Context, ownerID string, now time.Time) ([]*domain.Appointment, error)
}
