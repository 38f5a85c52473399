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
	"github.com/shopspring/decimal"
)

// Ledger categories written by the derivation engine.
const (
	CategorySentTransfer     = "Transferência Enviada"
	CategoryReceivedTransfer = "Transferência Recebida"
	CategoryServices         = "Serviços"
)

type financeService struct {
	transactions repository.TransactionRepo
	accounts     repository.AccountRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

// NewFinanceService creates the financial derivation engine.
func NewFinanceService(
	transactions repository.TransactionRepo,
	accounts repository.AccountRepo,
	uow db.UnitOfWork,
	observer UseCaseObserver,
) FinanceService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &financeService{
		transactions: transactions,
		accounts:     accounts,
		uow:          uow,
		observer:     observer,
	}
}

// RealizeTransfer inserts the EXPENSE and INCOME legs of a transfer inside
// one transaction. Both legs share the amount, due date, status, and a
// TransferID; a failure on either insert rolls back the other.
func (s *financeService) RealizeTransfer(ctx context.Context, actor domain.Actor, req domain.TransferRequest) ([]*domain.FinancialTransaction, error) {
	started := time.Now()
	pair, err := s.realizeTransfer(ctx, actor, req)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "realize_transfer",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"amount": req.Amount.String()},
		StartedAt: started,
	})
	return pair, err
}

func (s *financeService) realizeTransfer(ctx context.Context, actor domain.Actor, req domain.TransferRequest) ([]*domain.FinancialTransaction, error) {
	if err := policy.Check(actor.Role, policy.OpFinanceCreate, "transfer"); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, err := s.accounts.GetByID(ctx, req.FromAccountID)
	if err != nil {
		return nil, db.Normalize(err)
	}
	to, err := s.accounts.GetByID(ctx, req.ToAccountID)
	if err != nil {
		return nil, db.Normalize(err)
	}

	now := time.Now().UTC()
	transferID := uuid.New().String()
	description := req.Description
	if description != "" {
		description += " - "
	}

	expense := &domain.FinancialTransaction{
		ID:               uuid.New().String(),
		OwnerID:          actor.ID,
		Type:             domain.TransactionExpense,
		Amount:           req.Amount,
		AccountID:        req.FromAccountID,
		CounterAccountID: req.ToAccountID,
		Category:         CategorySentTransfer,
		Status:           req.Status,
		DueDate:          req.DueDate,
		Description:      fmt.Sprintf("%spara %s", description, to.Name),
		TransferID:       transferID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	income := &domain.FinancialTransaction{
		ID:               uuid.New().String(),
		OwnerID:          actor.ID,
		Type:             domain.TransactionIncome,
		Amount:           req.Amount,
		AccountID:        req.ToAccountID,
		CounterAccountID: req.FromAccountID,
		Category:         CategoryReceivedTransfer,
		Status:           req.Status,
		DueDate:          req.DueDate,
		Description:      fmt.Sprintf("%sde %s", description, from.Name),
		TransferID:       transferID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteTransactionRepo(tx)
		if err := txRepo.Create(ctx, expense); err != nil {
			return err
		}
		return txRepo.Create(ctx, income)
	})
	if err != nil {
		return nil, db.Normalize(err)
	}
	return []*domain.FinancialTransaction{expense, income}, nil
}

// RealizeReceipt posts the paid service income for an approved receipt
// step: amount is the project's budget total, due and payment date both the
// document's effective date, settled by instant transfer.
func (s *financeService) RealizeReceipt(ctx context.Context, project *domain.Project, total decimal.Decimal, effectiveDate time.Time) (*domain.FinancialTransaction, error) {
	account, err := s.defaultAccount(ctx, project.OwnerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	paymentDate := effectiveDate
	income := &domain.FinancialTransaction{
		ID:            uuid.New().String(),
		OwnerID:       project.OwnerID,
		Type:          domain.TransactionIncome,
		Amount:        total,
		AccountID:     account.ID,
		Category:      CategoryServices,
		Status:        domain.TransactionPaid,
		DueDate:       effectiveDate,
		PaymentDate:   &paymentDate,
		PaymentMethod: domain.PaymentPix,
		ProjectID:     &project.ID,
		Description:   fmt.Sprintf("Recebimento de serviços - %s", project.Title),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.transactions.Create(ctx, income); err != nil {
		return nil, db.Normalize(err)
	}
	return income, nil
}

func (s *financeService) Create(ctx context.Context, actor domain.Actor, t *domain.FinancialTransaction) error {
	if err := policy.Check(actor.Role, policy.OpFinanceCreate, t.ID); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.OwnerID == "" {
		t.OwnerID = actor.ID
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TransactionPending
	}
	if err := s.transactions.Create(ctx, t); err != nil {
		return db.Normalize(err)
	}
	return nil
}

func (s *financeService) Update(ctx context.Context, actor domain.Actor, t *domain.FinancialTransaction) error {
	if err := policy.Check(actor.Role, policy.OpFinanceUpdate, t.ID); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}

	existing, err := s.transactions.GetByID(ctx, t.ID)
	if err != nil {
		return db.Normalize(err)
	}
	// Realized transfers are immutable: the pair must be deleted and
	// recreated so the two legs cannot drift apart.
	if existing.PartOfTransfer() {
		return fmt.Errorf("transfer entries cannot be updated; delete the transfer and create it again")
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.transactions.Update(ctx, t); err != nil {
		return db.Normalize(err)
	}
	return nil
}

func (s *financeService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := policy.Check(actor.Role, policy.OpFinanceDelete, id); err != nil {
		return err
	}
	if err := s.transactions.Delete(ctx, id); err != nil {
		return db.Normalize(err)
	}
	return nil
}

func (s *financeService) List(ctx context.Context, ownerID string) ([]*domain.FinancialTransaction, error) {
	txs, err := s.transactions.List(ctx, ownerID)
	if err != nil {
		return nil, db.Normalize(err)
	}
	return txs, nil
}

// defaultAccount is where derived receipts post: the owner's oldest
// account.
func (s *financeService) defaultAccount(ctx context.Context, ownerID string) (*domain.Account, error) {
	accounts, err := s.accounts.List(ctx, ownerID)
	if err != nil {
		return nil, db.Normalize(err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no account registered for receipts")
	}
	oldest := accounts[0]
	for _, a := range accounts[1:] {
		if a.CreatedAt.Before(oldest.CreatedAt) {
			oldest = a
		}
	}
	return oldest, nil
}
