package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
)

const transactionColumns = `id, owner_id, type, amount, account_id, counter_account_id,
		category, status, due_date, payment_date, payment_method,
		project_id, description, transfer_id, created_at, updated_at`

// SQLiteTransactionRepo implements TransactionRepo using a SQLite database.
// The schema itself refuses TRANSFER-typed rows; the service layer rejects
// them before the write so callers get a validation error, not a constraint
// failure.
type SQLiteTransactionRepo struct {
	db db.DBTX
}

// NewSQLiteTransactionRepo creates a new SQLiteTransactionRepo.
func NewSQLiteTransactionRepo(conn db.DBTX) *SQLiteTransactionRepo {
	return &SQLiteTransactionRepo{db: conn}
}

func (r *SQLiteTransactionRepo) Create(ctx context.Context, t *domain.FinancialTransaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.OwnerID,
		string(t.Type),
		t.Amount.String(),
		t.AccountID,
		t.CounterAccountID,
		t.Category,
		string(t.Status),
		t.DueDate.Format(dateLayout),
		nullableTimeToString(t.PaymentDate, dateLayout),
		string(t.PaymentMethod),
		nullableString(t.ProjectID),
		t.Description,
		t.TransferID,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

func (r *SQLiteTransactionRepo) GetByID(ctx context.Context, id string) (*domain.FinancialTransaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	return scanTransaction(row.Scan)
}

func (r *SQLiteTransactionRepo) List(ctx context.Context, ownerID string) ([]*domain.FinancialTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = ? ORDER BY due_date, created_at`
	return r.queryMany(ctx, query, ownerID)
}

func (r *SQLiteTransactionRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.FinancialTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE project_id = ? ORDER BY due_date, created_at`
	return r.queryMany(ctx, query, projectID)
}

func (r *SQLiteTransactionRepo) Update(ctx context.Context, t *domain.FinancialTransaction) error {
	query := `UPDATE transactions SET type = ?, amount = ?, account_id = ?, category = ?,
		status = ?, due_date = ?, payment_date = ?, payment_method = ?, description = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(t.Type),
		t.Amount.String(),
		t.AccountID,
		t.Category,
		string(t.Status),
		t.DueDate.Format(dateLayout),
		nullableTimeToString(t.PaymentDate, dateLayout),
		string(t.PaymentMethod),
		t.Description,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}
	return nil
}

func (r *SQLiteTransactionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return nil
}

func (r *SQLiteTransactionRepo) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting project transactions: %w", err)
	}
	return nil
}

func (r *SQLiteTransactionRepo) queryMany(ctx context.Context, query string, arg any) ([]*domain.FinancialTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.FinancialTransaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return txs, nil
}

func scanTransaction(scan func(dest ...any) error) (*domain.FinancialTransaction, error) {
	var t domain.FinancialTransaction
	var typeStr, amountStr, statusStr, methodStr, dueDateStr, createdAtStr, updatedAtStr string
	var paymentDate, projectID sql.NullString

	err := scan(
		&t.ID, &t.OwnerID, &typeStr, &amountStr, &t.AccountID, &t.CounterAccountID,
		&t.Category, &statusStr, &dueDateStr, &paymentDate, &methodStr,
		&projectID, &t.Description, &t.TransferID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("transaction: %w", db.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning transaction: %w", err)
	}

	t.Type = domain.TransactionType(typeStr)
	t.Status = domain.TransactionStatus(statusStr)
	t.PaymentMethod = domain.PaymentMethod(methodStr)
	t.ProjectID = parseNullableString(projectID)
	t.PaymentDate = parseNullableTime(paymentDate, dateLayout)

	var parseErr error
	if t.Amount, parseErr = parseDecimal(amountStr); parseErr != nil {
		return nil, parseErr
	}
	if t.DueDate, parseErr = time.Parse(dateLayout, dueDateStr); parseErr != nil {
		return nil, fmt.Errorf("parsing due_date: %w", parseErr)
	}
	if t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}
