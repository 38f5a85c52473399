package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
)

// SQLiteAppointmentRepo implements AppointmentRepo using a SQLite database.
type SQLiteAppointmentRepo struct {
	db db.DBTX
}

// NewSQLiteAppointmentRepo creates a new SQLiteAppointmentRepo.
func NewSQLiteAppointmentRepo(conn db.DBTX) *SQLiteAppointmentRepo {
	return &SQLiteAppointmentRepo{db: conn}
}

func (r *SQLiteAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	query := `INSERT INTO appointments (id, owner_id, title, date, project_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.OwnerID, a.Title, a.Date.Format(dateLayout),
		nullableString(a.ProjectID),
		a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

func (r *SQLiteAppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, date, project_id, created_at, updated_at FROM appointments WHERE id = ?`, id)
	return scanAppointment(row.Scan)
}

func (r *SQLiteAppointmentRepo) List(ctx context.Context, ownerID string) ([]*domain.Appointment, error) {
	query := `SELECT id, owner_id, title, date, project_id, created_at, updated_at
		FROM appointments WHERE owner_id = ? ORDER BY date`
	return r.queryMany(ctx, query, ownerID)
}

func (r *SQLiteAppointmentRepo) ListOnDay(ctx context.Context, ownerID string, day time.Time) ([]*domain.Appointment, error) {
	query := `SELECT id, owner_id, title, date, project_id, created_at, updated_at
		FROM appointments WHERE owner_id = ? AND date = ? ORDER BY created_at`
	return r.queryMany(ctx, query, ownerID, day.Format(dateLayout))
}

func (r *SQLiteAppointmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}
	return nil
}

func (r *SQLiteAppointmentRepo) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting project appointments: %w", err)
	}
	return nil
}

func (r *SQLiteAppointmentRepo) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer rows.Close()

	var appts []*domain.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointments: %w", err)
	}
	return appts, nil
}

func scanAppointment(scan func(dest ...any) error) (*domain.Appointment, error) {
	var a domain.Appointment
	var dateStr, createdAtStr, updatedAtStr string
	var projectID sql.NullString
	err := scan(&a.ID, &a.OwnerID, &a.Title, &dateStr, &projectID, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("appointment: %w", db.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning appointment: %w", err)
	}
	a.ProjectID = parseNullableString(projectID)
	var parseErr error
	if a.Date, parseErr = time.Parse(dateLayout, dateStr); parseErr != nil {
		return nil, fmt.Errorf("parsing appointment date: %w", parseErr)
	}
	if a.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing appointment created_at: %w", parseErr)
	}
	if a.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing appointment updated_at: %w", parseErr)
	}
	return &a, nil
}
