package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and the
// whole list re-runs on every startup; "duplicate column name" errors from
// ALTER TABLE are tolerated for that reason.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		name       TEXT NOT NULL,
		document   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS service_types (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		name       TEXT NOT NULL,
		base_price TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id             TEXT PRIMARY KEY,
		owner_id       TEXT NOT NULL,
		number         INTEGER NOT NULL,
		title          TEXT NOT NULL,
		client_id      TEXT NOT NULL REFERENCES clients(id),
		service_id     TEXT NOT NULL REFERENCES service_types(id),
		frontier_index INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		UNIQUE(owner_id, number)
	)`,

	`CREATE TABLE IF NOT EXISTS steps (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		ordinal         INTEGER NOT NULL,
		label           TEXT NOT NULL,
		has_document    INTEGER NOT NULL DEFAULT 0,
		status          TEXT NOT NULL DEFAULT 'NOT_STARTED'
		                CHECK(status IN ('NOT_STARTED','IN_PROGRESS','WAITING_APPROVAL','COMPLETED')),
		notes           TEXT NOT NULL DEFAULT '',
		document_number TEXT,
		completed_at    TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE(project_id, ordinal)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_steps_project ON steps(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_steps_label ON steps(label)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id                 TEXT PRIMARY KEY,
		owner_id           TEXT NOT NULL,
		type               TEXT NOT NULL CHECK(type IN ('INCOME','EXPENSE')),
		amount             TEXT NOT NULL,
		account_id         TEXT NOT NULL REFERENCES accounts(id),
		counter_account_id TEXT NOT NULL DEFAULT '',
		category           TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL DEFAULT 'PENDING'
		                   CHECK(status IN ('PENDING','PAID','OVERDUE','CANCELED')),
		due_date           TEXT NOT NULL,
		payment_date       TEXT,
		payment_method     TEXT NOT NULL DEFAULT '',
		project_id         TEXT REFERENCES projects(id) ON DELETE CASCADE,
		description        TEXT NOT NULL DEFAULT '',
		transfer_id        TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_transactions_owner ON transactions(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_project ON transactions(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_transfer ON transactions(transfer_id)`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		title      TEXT NOT NULL,
		date       TEXT NOT NULL,
		project_id TEXT REFERENCES projects(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_appointments_owner_date ON appointments(owner_id, date)`,

	`CREATE TABLE IF NOT EXISTS document_sequences (
		owner_id TEXT NOT NULL,
		label    TEXT NOT NULL,
		year     INTEGER NOT NULL,
		next_seq INTEGER NOT NULL,
		PRIMARY KEY (owner_id, label, year)
	)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id          TEXT PRIMARY KEY,
		action      TEXT NOT NULL,
		table_name  TEXT NOT NULL,
		record_id   TEXT NOT NULL,
		old_data    TEXT NOT NULL DEFAULT '',
		new_data    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reminder_marks (
		owner_id TEXT NOT NULL,
		day      TEXT NOT NULL,
		PRIMARY KEY (owner_id, day)
	)`,
}
