package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"memoria/internal/preference"
	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
	"memoria/pkg/platform/tx"
)

// PostgresStore persists visibility preferences in Postgres. Uniqueness per
// scope is enforced by partial indexes, so saves are plain upserts.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveGlobal(ctx context.Context, pref *preference.Preference) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO visibility_preferences (scope, contributor_id, visibility, updated_at)
		VALUES ('global', NULL, $1, $2)
		ON CONFLICT (scope) WHERE contributor_id IS NULL DO UPDATE SET
			visibility = EXCLUDED.visibility,
			updated_at = EXCLUDED.updated_at`,
		string(pref.Visibility), pref.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save global preference: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetGlobal(ctx context.Context) (*preference.Preference, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT visibility, updated_at FROM visibility_preferences
		WHERE scope = 'global'`)

	pref := preference.Preference{Scope: preference.ScopeGlobal}
	var rawVis string
	if err := row.Scan(&rawVis, &pref.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan global preference: %w", err)
	}
	pref.Visibility = visibility.Normalize(rawVis)
	return &pref, nil
}

func (s *PostgresStore) SaveContributor(ctx context.Context, pref *preference.Preference) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO visibility_preferences (scope, contributor_id, visibility, updated_at)
		VALUES ('contributor', $1, $2, $3)
		ON CONFLICT (contributor_id) WHERE contributor_id IS NOT NULL DO UPDATE SET
			visibility = EXCLUDED.visibility,
			updated_at = EXCLUDED.updated_at`,
		pref.ContributorID.String(), string(pref.Visibility), pref.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save contributor preference: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetContributor(ctx context.Context, contributorID id.UserID) (*preference.Preference, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT visibility, updated_at FROM visibility_preferences
		WHERE scope = 'contributor' AND contributor_id = $1`,
		contributorID.String(),
	)

	pref := preference.Preference{
		Scope:         preference.ScopeContributor,
		ContributorID: &contributorID,
	}
	var rawVis string
	if err := row.Scan(&rawVis, &pref.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan contributor preference: %w", err)
	}
	pref.Visibility = visibility.Normalize(rawVis)
	return &pref, nil
}
