package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"memoria/internal/auth"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
	"memoria/pkg/platform/tx"
)

// PostgresStore persists users and invites in Postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveUser(ctx context.Context, u *auth.User) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID.String(), strings.ToLower(u.Email), u.DisplayName, u.PasswordHash, u.IsAdmin, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, userID id.UserID) (*auth.User, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, is_admin, created_at
		FROM users WHERE id = $1`,
		userID.String(),
	)
	return scanUser(row)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, is_admin, created_at
		FROM users WHERE email = $1`,
		strings.ToLower(email),
	)
	return scanUser(row)
}

func (s *PostgresStore) SaveInvite(ctx context.Context, inv *auth.Invite) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO invites (id, code_hash, created_by, remaining_uses, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID.String(), inv.CodeHash, inv.CreatedBy.String(), inv.RemainingUses, inv.ExpiresAt, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save invite: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetInvite(ctx context.Context, inviteID id.InviteID) (*auth.Invite, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, code_hash, created_by, remaining_uses, expires_at, created_at
		FROM invites WHERE id = $1`,
		inviteID.String(),
	)

	var (
		rawID        string
		rawCreatedBy string
		inv          auth.Invite
	)
	if err := row.Scan(&rawID, &inv.CodeHash, &rawCreatedBy, &inv.RemainingUses, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan invite: %w", err)
	}

	parsedID, err := id.ParseInviteID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse invite id: %w", err)
	}
	createdBy, err := id.ParseUserID(rawCreatedBy)
	if err != nil {
		return nil, fmt.Errorf("parse invite creator id: %w", err)
	}
	inv.ID = parsedID
	inv.CreatedBy = createdBy
	return &inv, nil
}

// ConsumeInviteUse decrements the remaining-use counter. The guard in the
// WHERE clause makes concurrent redemptions safe without a transaction.
func (s *PostgresStore) ConsumeInviteUse(ctx context.Context, inviteID id.InviteID) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE invites SET remaining_uses = remaining_uses - 1
		WHERE id = $1 AND remaining_uses > 0`,
		inviteID.String(),
	)
	if err != nil {
		return fmt.Errorf("consume invite use: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("consume invite rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*auth.User, error) {
	var (
		rawID string
		u     auth.User
	)
	if err := row.Scan(&rawID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	userID, err := id.ParseUserID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	u.ID = userID
	return &u, nil
}
