package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is idempotent and portable across Postgres and the sqlite driver
// used in tests.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date    TIMESTAMP,
		priority    TEXT NOT NULL DEFAULT 'medium',
		category    TEXT NOT NULL DEFAULT 'personal',
		status      TEXT NOT NULL DEFAULT 'pending',
		created_at  TIMESTAMP NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks (priority)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks (category)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status_priority ON tasks (status, priority)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks (created_at)`,
	`CREATE TABLE IF NOT EXISTS status_checks (
		id          TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		timestamp   TIMESTAMP NOT NULL
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
