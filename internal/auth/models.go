package auth

import (
	"time"

	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
)

// User is a contributor account.
type User struct {
	ID           id.UserID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Invite is a redeemable registration code. Only the bcrypt hash of the
// secret part is stored; the plaintext code is shown once at creation.
type Invite struct {
	ID            id.InviteID `json:"id"`
	CodeHash      string      `json:"-"`
	CreatedBy     id.UserID   `json:"created_by"`
	RemainingUses int         `json:"remaining_uses"`
	ExpiresAt     *time.Time  `json:"expires_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Expired reports whether the invite can no longer be redeemed at now.
func (i *Invite) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// Session is one authenticated login. Sessions live in redis when configured
// and carry client metadata for the account activity view.
type Session struct {
	ID        id.SessionID `json:"id"`
	UserID    id.UserID    `json:"user_id"`
	ClientIP  string       `json:"client_ip,omitempty"`
	Device    string       `json:"device,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// NewUser creates a User with domain invariant validation.
func NewUser(email, displayName, passwordHash string) (*User, error) {
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email cannot be empty")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash cannot be empty")
	}
	return &User{
		ID:           id.NewUserID(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}
