package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
)

// SQLiteServiceTypeRepo implements ServiceTypeRepo using a SQLite database.
type SQLiteServiceTypeRepo struct {
	db db.DBTX
}

// NewSQLiteServiceTypeRepo creates a new SQLiteServiceTypeRepo.
func NewSQLiteServiceTypeRepo(conn db.DBTX) *SQLiteServiceTypeRepo {
	return &SQLiteServiceTypeRepo{db: conn}
}

func (r *SQLiteServiceTypeRepo) Create(ctx context.Context, s *domain.ServiceType) error {
	query := `INSERT INTO service_types (id, owner_id, name, base_price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.OwnerID, s.Name, s.BasePrice.String(),
		s.CreatedAt.Format(time.RFC3339), s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting service type: %w", err)
	}
	return nil
}

func (r *SQLiteServiceTypeRepo) GetByID(ctx context.Context, id string) (*domain.ServiceType, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, base_price, created_at, updated_at FROM service_types WHERE id = ?`, id)
	return scanServiceType(row.Scan)
}

func (r *SQLiteServiceTypeRepo) List(ctx context.Context, ownerID string) ([]*domain.ServiceType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, name, base_price, created_at, updated_at FROM service_types WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing service types: %w", err)
	}
	defer rows.Close()

	var services []*domain.ServiceType
	for rows.Next() {
		s, err := scanServiceType(rows.Scan)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service types: %w", err)
	}
	return services, nil
}

func (r *SQLiteServiceTypeRepo) Update(ctx context.Context, s *domain.ServiceType) error {
	query := `UPDATE service_types SET name = ?, base_price = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, s.Name, s.BasePrice.String(), s.UpdatedAt.Format(time.RFC3339), s.ID)
	if err != nil {
		return fmt.Errorf("updating service type: %w", err)
	}
	return nil
}

func (r *SQLiteServiceTypeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM service_types WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting service type: %w", err)
	}
	return nil
}

func scanServiceType(scan func(dest ...any) error) (*domain.ServiceType, error) {
	var s domain.ServiceType
	var priceStr, createdAtStr, updatedAtStr string
	err := scan(&s.ID, &s.OwnerID, &s.Name, &priceStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("service type: %w", db.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning service type: %w", err)
	}
	var parseErr error
	if s.BasePrice, parseErr = parseDecimal(priceStr); parseErr != nil {
		return nil, parseErr
	}
	if s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing service type created_at: %w", parseErr)
	}
	if s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing service type updated_at: %w", parseErr)
	}
	return &s, nil
}
