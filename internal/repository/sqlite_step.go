package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
)

const stepColumns = `id, project_id, ordinal, label, has_document, status,
		notes, document_number, completed_at, created_at, updated_at`

// SQLiteStepRepo implements StepRepo using a SQLite database.
type SQLiteStepRepo struct {
	db db.DBTX
}

// NewSQLiteStepRepo creates a new SQLiteStepRepo.
func NewSQLiteStepRepo(conn db.DBTX) *SQLiteStepRepo {
	return &SQLiteStepRepo{db: conn}
}

func (r *SQLiteStepRepo) Create(ctx context.Context, s *domain.Step) error {
	query := `INSERT INTO steps (` + stepColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		s.Ordinal,
		s.Label,
		boolToInt(s.HasDocument),
		string(s.Status),
		s.Notes,
		nullableString(s.DocumentNumber),
		nullableTimeToString(s.CompletedAt, time.RFC3339),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting step: %w", err)
	}
	return nil
}

func (r *SQLiteStepRepo) GetByID(ctx context.Context, id string) (*domain.Step, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+stepColumns+` FROM steps WHERE id = ?`, id)
	return scanStep(row.Scan)
}

func (r *SQLiteStepRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Step, error) {
	query := `SELECT ` + stepColumns + ` FROM steps WHERE project_id = ? ORDER BY ordinal`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing steps: %w", err)
	}
	defer rows.Close()

	var steps []*domain.Step
	for rows.Next() {
		s, err := scanStep(rows.Scan)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating steps: %w", err)
	}
	return steps, nil
}

func (r *SQLiteStepRepo) Update(ctx context.Context, s *domain.Step) error {
	query := `UPDATE steps SET status = ?, notes = ?, document_number = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(s.Status),
		s.Notes,
		nullableString(s.DocumentNumber),
		nullableTimeToString(s.CompletedAt, time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating step: %w", err)
	}
	return nil
}

func (r *SQLiteStepRepo) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM steps WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting project steps: %w", err)
	}
	return nil
}

func scanStep(scan func(dest ...any) error) (*domain.Step, error) {
	var s domain.Step
	var statusStr, createdAtStr, updatedAtStr string
	var hasDocument int
	var docNumber, completedAt sql.NullString

	err := scan(
		&s.ID, &s.ProjectID, &s.Ordinal, &s.Label, &hasDocument, &statusStr,
		&s.Notes, &docNumber, &completedAt, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("step: %w", db.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning step: %w", err)
	}

	s.HasDocument = intToBool(hasDocument)
	s.Status = domain.StepStatus(statusStr)
	s.DocumentNumber = parseNullableString(docNumber)
	s.CompletedAt = parseNullableTime(completedAt, time.RFC3339)

	var parseErr error
	if s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing step created_at: %w", parseErr)
	}
	if s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing step updated_at: %w", parseErr)
	}
	return &s, nil
}
