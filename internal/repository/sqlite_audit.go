package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rmaciel/fundiario/internal/audit"
	"github.com/rmaciel/fundiario/internal/db"
)

// SQLiteAuditSink writes audit entries to the audit_log table.
type SQLiteAuditSink struct {
	db db.DBTX
}

// NewSQLiteAuditSink creates a new SQLiteAuditSink.
func NewSQLiteAuditSink(conn db.DBTX) *SQLiteAuditSink {
	return &SQLiteAuditSink{db: conn}
}

func (s *SQLiteAuditSink) Record(ctx context.Context, e audit.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO audit_log (id, action, table_name, record_id, old_data, new_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New().String(),
		e.Action,
		e.TableName,
		e.RecordID,
		e.OldData,
		e.NewData,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}
