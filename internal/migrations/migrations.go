// Package migrations holds the schema for the accounts table and applies it
// at startup. Statements are idempotent so Apply can run on every boot.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		phone_number TEXT NOT NULL DEFAULT '',
		date_joined DATE NOT NULL DEFAULT CURRENT_DATE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_email ON accounts (email)`,
}

// Apply executes every migration statement in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
