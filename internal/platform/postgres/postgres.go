// Package postgres owns the database handle and schema for the service.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver
)

// Open opens a pgx-backed database/sql handle and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// migrations are applied in order; each statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		display_name  TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS invites (
		id             UUID PRIMARY KEY,
		code_hash      TEXT NOT NULL,
		created_by     UUID NOT NULL REFERENCES users(id),
		remaining_uses INT NOT NULL,
		expires_at     TIMESTAMPTZ,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS people (
		id              UUID PRIMARY KEY,
		canonical_name  TEXT NOT NULL,
		base_visibility TEXT NOT NULL DEFAULT 'pending',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS claims (
		person_id   UUID PRIMARY KEY REFERENCES people(id) ON DELETE CASCADE,
		user_id     UUID NOT NULL REFERENCES users(id),
		verified_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         UUID PRIMARY KEY,
		author_id  UUID NOT NULL REFERENCES users(id),
		title      TEXT NOT NULL,
		body       TEXT NOT NULL,
		event_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS notes_event_date_idx ON notes (event_date, created_at)`,
	`CREATE TABLE IF NOT EXISTS note_references (
		id                  UUID PRIMARY KEY,
		note_id             UUID NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
		person_id           UUID NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		visibility_override TEXT,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (note_id, person_id)
	)`,
	`CREATE TABLE IF NOT EXISTS visibility_preferences (
		scope          TEXT NOT NULL CHECK (scope IN ('global', 'contributor')),
		contributor_id UUID,
		visibility     TEXT NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK ((scope = 'global') = (contributor_id IS NULL))
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS visibility_preferences_global_idx
		ON visibility_preferences (scope) WHERE contributor_id IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS visibility_preferences_contributor_idx
		ON visibility_preferences (contributor_id) WHERE contributor_id IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS audit_events (
		id          UUID PRIMARY KEY,
		actor_id    UUID,
		action      TEXT NOT NULL,
		subject     TEXT NOT NULL,
		detail      TEXT NOT NULL DEFAULT '',
		occurred_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS audit_events_actor_idx ON audit_events (actor_id, occurred_at)`,
}

// Migrate applies the schema. Safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
