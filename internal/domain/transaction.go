package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialTransaction is one ledger entry. A transfer between accounts is
// never stored with type TRANSFER: it is realized as an EXPENSE/INCOME pair
// sharing a TransferID (see service.FinanceService).
type FinancialTransaction struct {
	ID               string
	OwnerID          string
	Type             TransactionType
	Amount           decimal.Decimal
	AccountID        string
	CounterAccountID string
	Category         string
	Status           TransactionStatus
	DueDate          time.Time
	PaymentDate      *time.Time
	PaymentMethod    PaymentMethod
	ProjectID        *string
	Description      string
	TransferID       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the local invariants of a ledger entry before any write.
func (t *FinancialTransaction) Validate() error {
	if t.Type == TransactionTransfer {
		return fmt.Errorf("transfer-typed entries cannot be stored directly; use a transfer request")
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative, got %s", t.Amount)
	}
	if t.AccountID == "" {
		return fmt.Errorf("account is required")
	}
	return nil
}

// PartOfTransfer reports whether the entry belongs to a realized transfer
// pair. Such entries are immutable: callers delete and recreate.
func (t *FinancialTransaction) PartOfTransfer() bool {
	return t.TransferID != ""
}

// TransferRequest is an account-to-account transfer as submitted by a
// caller. It is realized as two ledger entries, never stored as one row.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
	DueDate       time.Time
	Status        TransactionStatus
}

// Validate rejects malformed transfer requests before any write.
func (r *TransferRequest) Validate() error {
	if r.FromAccountID == "" || r.ToAccountID == "" {
		return fmt.Errorf("both source and destination accounts are required")
	}
	if r.FromAccountID == r.ToAccountID {
		return fmt.Errorf("source and destination accounts must differ")
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive, got %s", r.Amount)
	}
	return nil
}
