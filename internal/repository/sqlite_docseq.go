package repository

import (
	"context"
	"fmt"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/docseq"
)

// projectNumberLabel is the reserved counter label for sequential project
// numbers. Step labels come from the workflow templates and never collide
// with it.
const projectNumberLabel = "__project_number__"

// SQLiteDocumentSequenceRepo allocates (owner, label, year) sequence values
// atomically from the document_sequences table. The counter is seeded once
// from the existing document numbers matching the label, so databases that
// predate the allocator continue from their historical maximum; afterwards
// every allocation is a single upsert-and-increment, immune to the
// scan-then-assign race.
type SQLiteDocumentSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteDocumentSequenceRepo creates a new SQLiteDocumentSequenceRepo.
func NewSQLiteDocumentSequenceRepo(conn db.DBTX) *SQLiteDocumentSequenceRepo {
	return &SQLiteDocumentSequenceRepo{db: conn}
}

// NextDocumentSeq returns the next sequence for a document label within a
// year. Allocation is atomic and safe under concurrent writes.
func (r *SQLiteDocumentSequenceRepo) NextDocumentSeq(ctx context.Context, ownerID, label string, year int) (int, error) {
	max, err := r.scanLabelMax(ctx, ownerID, label, year)
	if err != nil {
		return 0, err
	}

	seedQuery := `INSERT OR IGNORE INTO document_sequences (owner_id, label, year, next_seq)
		VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, seedQuery, ownerID, label, year, max+1); err != nil {
		return 0, fmt.Errorf("seeding sequence for label %q year %d: %w", label, year, err)
	}

	var next int
	allocQuery := `UPDATE document_sequences
		SET next_seq = next_seq + 1
		WHERE owner_id = ? AND label = ? AND year = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, ownerID, label, year).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next seq for label %q year %d: %w", label, year, err)
	}
	return next, nil
}

// NextProjectNumber returns the next sequential project number for an
// owner, seeding from the highest number already assigned.
func (r *SQLiteDocumentSequenceRepo) NextProjectNumber(ctx context.Context, ownerID string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO document_sequences (owner_id, label, year, next_seq)
		SELECT ?, ?, 0, COALESCE(MAX(number), 0) + 1 FROM projects WHERE owner_id = ?`
	if _, err := r.db.ExecContext(ctx, seedQuery, ownerID, projectNumberLabel, ownerID); err != nil {
		return 0, fmt.Errorf("seeding project number sequence: %w", err)
	}

	var next int
	allocQuery := `UPDATE document_sequences
		SET next_seq = next_seq + 1
		WHERE owner_id = ? AND label = ? AND year = 0
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, ownerID, projectNumberLabel).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating project number: %w", err)
	}
	return next, nil
}

// scanLabelMax walks every stored document number for the label and returns
// the highest sequence within the year. Malformed numbers are skipped; the
// NNNN/YYYY pattern lives in the docseq package.
func (r *SQLiteDocumentSequenceRepo) scanLabelMax(ctx context.Context, ownerID, label string, year int) (int, error) {
	query := `SELECT s.document_number
		FROM steps s
		JOIN projects p ON p.id = s.project_id
		WHERE p.owner_id = ? AND s.label = ? AND s.document_number IS NOT NULL`
	rows, err := r.db.QueryContext(ctx, query, ownerID, label)
	if err != nil {
		return 0, fmt.Errorf("scanning document numbers for %q: %w", label, err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return 0, fmt.Errorf("scanning document number: %w", err)
		}
		seq, y, ok := docseq.Parse(number)
		if !ok || y != year {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating document numbers: %w", err)
	}
	return max, nil
}
