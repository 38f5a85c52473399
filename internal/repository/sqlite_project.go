package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
)

const projectColumns = `id, owner_id, number, title, client_id, service_id, frontier_index, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.Number,
		p.Title,
		p.ClientID,
		p.ServiceID,
		p.FrontierIndex,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row.Scan)
}

func (r *SQLiteProjectRepo) GetWithSteps(ctx context.Context, id string) (*domain.Project, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	steps, err := NewSQLiteStepRepo(r.db).ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Steps = steps
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = ? ORDER BY number`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// ListWithSteps is the joined read: one query over projects and steps,
// grouped back into project records with ordered step collections.
func (r *SQLiteProjectRepo) ListWithSteps(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	query := `SELECT p.id, p.owner_id, p.number, p.title, p.client_id, p.service_id,
			p.frontier_index, p.created_at, p.updated_at,
			s.id, s.project_id, s.ordinal, s.label, s.has_document, s.status,
			s.notes, s.document_number, s.completed_at, s.created_at, s.updated_at
		FROM projects p
		LEFT JOIN steps s ON s.project_id = p.id
		WHERE p.owner_id = ?
		ORDER BY p.number, s.ordinal`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing projects with steps: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	byID := make(map[string]*domain.Project)
	for rows.Next() {
		var p domain.Project
		var pCreated, pUpdated string
		var sID, sProjectID, sLabel, sStatus, sNotes, sCreated, sUpdated sql.NullString
		var sDocNumber, sCompletedAt sql.NullString
		var sOrdinal, sHasDocument sql.NullInt64

		err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Number, &p.Title, &p.ClientID, &p.ServiceID,
			&p.FrontierIndex, &pCreated, &pUpdated,
			&sID, &sProjectID, &sOrdinal, &sLabel, &sHasDocument, &sStatus,
			&sNotes, &sDocNumber, &sCompletedAt, &sCreated, &sUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning project+step row: %w", err)
		}

		proj, seen := byID[p.ID]
		if !seen {
			if p.CreatedAt, err = time.Parse(time.RFC3339, pCreated); err != nil {
				return nil, fmt.Errorf("parsing project created_at: %w", err)
			}
			if p.UpdatedAt, err = time.Parse(time.RFC3339, pUpdated); err != nil {
				return nil, fmt.Errorf("parsing project updated_at: %w", err)
			}
			proj = &p
			byID[p.ID] = proj
			projects = append(projects, proj)
		}

		if !sID.Valid {
			continue
		}
		step := &domain.Step{
			ID:             sID.String,
			ProjectID:      sProjectID.String,
			Ordinal:        int(sOrdinal.Int64),
			Label:          sLabel.String,
			HasDocument:    intToBool(int(sHasDocument.Int64)),
			Status:         domain.StepStatus(sStatus.String),
			Notes:          sNotes.String,
			DocumentNumber: parseNullableString(sDocNumber),
			CompletedAt:    parseNullableTime(sCompletedAt, time.RFC3339),
		}
		if step.CreatedAt, err = time.Parse(time.RFC3339, sCreated.String); err != nil {
			return nil, fmt.Errorf("parsing step created_at: %w", err)
		}
		if step.UpdatedAt, err = time.Parse(time.RFC3339, sUpdated.String); err != nil {
			return nil, fmt.Errorf("parsing step updated_at: %w", err)
		}
		proj.Steps = append(proj.Steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects with steps: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET title = ?, client_id = ?, service_id = ?, frontier_index = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Title,
		p.ClientID,
		p.ServiceID,
		p.FrontierIndex,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func scanProject(scan func(dest ...any) error) (*domain.Project, error) {
	var p domain.Project
	var createdAtStr, updatedAtStr string

	err := scan(
		&p.ID, &p.OwnerID, &p.Number, &p.Title, &p.ClientID, &p.ServiceID,
		&p.FrontierIndex, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", db.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	var parseErr error
	if p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
