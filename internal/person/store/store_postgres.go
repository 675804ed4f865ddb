package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"memoria/internal/person"
	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
	"memoria/pkg/platform/tx"
)

// PostgresStore persists people and claims in Postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, p *person.Person) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO people (id, canonical_name, base_visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			canonical_name  = EXCLUDED.canonical_name,
			base_visibility = EXCLUDED.base_visibility,
			updated_at      = EXCLUDED.updated_at`,
		p.ID.String(), p.CanonicalName, string(p.BaseVisibility), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save person: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, personID id.PersonID) (*person.Person, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, canonical_name, base_visibility, created_at, updated_at
		FROM people WHERE id = $1`,
		personID.String(),
	)
	return scanPerson(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]*person.Person, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT id, canonical_name, base_visibility, created_at, updated_at
		FROM people ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []*person.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return people, nil
}

func (s *PostgresStore) SetVisibility(ctx context.Context, personID id.PersonID, v visibility.Visibility, updatedAt time.Time) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE people SET base_visibility = $2, updated_at = $3 WHERE id = $1`,
		personID.String(), string(v), updatedAt,
	)
	if err != nil {
		return fmt.Errorf("set visibility: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set visibility rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveClaim(ctx context.Context, claim *person.Claim) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		INSERT INTO claims (person_id, user_id, verified_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (person_id) DO NOTHING`,
		claim.PersonID.String(), claim.UserID.String(), claim.VerifiedAt,
	)
	if err != nil {
		return fmt.Errorf("save claim: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save claim rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) DeleteClaim(ctx context.Context, personID id.PersonID) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `DELETE FROM claims WHERE person_id = $1`, personID.String())
	if err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete claim rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetClaim(ctx context.Context, personID id.PersonID) (*person.Claim, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT person_id, user_id, verified_at FROM claims WHERE person_id = $1`,
		personID.String(),
	)

	var (
		rawPersonID string
		rawUserID   string
		claim       person.Claim
	)
	if err := row.Scan(&rawPersonID, &rawUserID, &claim.VerifiedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan claim: %w", err)
	}

	personIDParsed, err := id.ParsePersonID(rawPersonID)
	if err != nil {
		return nil, fmt.Errorf("parse claim person id: %w", err)
	}
	userID, err := id.ParseUserID(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("parse claim user id: %w", err)
	}
	claim.PersonID = personIDParsed
	claim.UserID = userID
	return &claim, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*person.Person, error) {
	var (
		rawID  string
		rawVis string
		p      person.Person
	)
	if err := row.Scan(&rawID, &p.CanonicalName, &rawVis, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}

	personID, err := id.ParsePersonID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse person id: %w", err)
	}
	p.ID = personID
	// Stored values are normalized on read so an unrecognized value written by
	// an older or newer deployment degrades to pending instead of leaking.
	p.BaseVisibility = visibility.Normalize(rawVis)
	return &p, nil
}
