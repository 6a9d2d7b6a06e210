package database

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the application tables if they do not exist yet.
// Run once at boot; every statement is idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admins (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id              BIGSERIAL PRIMARY KEY,
			name            TEXT NOT NULL,
			phone           TEXT NOT NULL,
			service         TEXT NOT NULL,
			expiration_date DATE NOT NULL,
			active          BOOLEAN NOT NULL DEFAULT TRUE,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_active_expiration
			ON clients (expiration_date) WHERE active`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id              BIGSERIAL PRIMARY KEY,
			service         TEXT NOT NULL,
			account_type    TEXT,
			status          TEXT NOT NULL DEFAULT 'available',
			expiration_date DATE,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}
