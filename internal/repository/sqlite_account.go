package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
)

// SQLiteAccountRepo implements AccountRepo using a SQLite database.
type SQLiteAccountRepo struct {
	db db.DBTX
}

// NewSQLiteAccountRepo creates a new SQLiteAccountRepo.
func NewSQLiteAccountRepo(conn db.DBTX) *SQLiteAccountRepo {
	return &SQLiteAccountRepo{db: conn}
}

func (r *SQLiteAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, owner_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.OwnerID, a.Name,
		a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func (r *SQLiteAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, created_at, updated_at FROM accounts WHERE id = ?`, id)
	return scanAccount(row.Scan)
}

func (r *SQLiteAccountRepo) List(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, name, created_at, updated_at FROM accounts WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return accounts, nil
}

func (r *SQLiteAccountRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	return nil
}

func scanAccount(scan func(dest ...any) error) (*domain.Account, error) {
	var a domain.Account
	var createdAtStr, updatedAtStr string
	err := scan(&a.ID, &a.OwnerID, &a.Name, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("account: %w", db.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning account: %w", err)
	}
	var parseErr error
	if a.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing account created_at: %w", parseErr)
	}
	if a.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing account updated_at: %w", parseErr)
	}
	return &a, nil
}
