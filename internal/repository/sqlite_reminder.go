package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
)

// SQLiteReminderMarkRepo persists the per-owner, per-day reminder marker.
// The marker survives restarts, so same-day reminders fire once even across
// process reloads and concurrent sessions.
type SQLiteReminderMarkRepo struct {
	db db.DBTX
}

// NewSQLiteReminderMarkRepo creates a new SQLiteReminderMarkRepo.
func NewSQLiteReminderMarkRepo(conn db.DBTX) *SQLiteReminderMarkRepo {
	return &SQLiteReminderMarkRepo{db: conn}
}

// Claim atomically records that the owner has been reminded on the given
// day. Returns true for the caller that inserted the mark, false for every
// later caller the same day.
func (r *SQLiteReminderMarkRepo) Claim(ctx context.Context, ownerID string, day time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO reminder_marks (owner_id, day) VALUES (?, ?)`,
		ownerID, day.Format(dateLayout),
	)
	if err != nil {
		return false, fmt.Errorf("claiming reminder mark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading reminder mark result: %w", err)
	}
	return n > 0, nil
}
