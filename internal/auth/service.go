package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"memoria/internal/auth/device"
	"memoria/internal/jwt_token"
	"memoria/internal/platform/metrics"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
	"memoria/pkg/email"
	"memoria/pkg/platform/sentinel"
	"memoria/pkg/requestcontext"
)

const minPasswordLength = 8

// Store is the persistence port for users and invites.
type Store interface {
	SaveUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, userID id.UserID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	SaveInvite(ctx context.Context, inv *Invite) error
	GetInvite(ctx context.Context, inviteID id.InviteID) (*Invite, error)
	ConsumeInviteUse(ctx context.Context, inviteID id.InviteID) error
}

// SessionStore is the persistence port for sessions. The redis-backed
// implementation expires entries itself; the memory one checks ExpiresAt.
type SessionStore interface {
	SaveSession(ctx context.Context, s *Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID id.SessionID) (*Session, error)
	DeleteSession(ctx context.Context, sessionID id.SessionID) error
}

// Auditor records privacy-relevant mutations.
type Auditor interface {
	Record(ctx context.Context, action, subject, detail string)
}

// Service owns registration, login, sessions, and invite bookkeeping.
type Service struct {
	store      Store
	sessions   SessionStore
	jwt        *jwttoken.JWTService
	audit      Auditor
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tokenTTL   time.Duration
	sessionTTL time.Duration
}

func NewService(
	store Store,
	sessions SessionStore,
	jwt *jwttoken.JWTService,
	audit Auditor,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	tokenTTL, sessionTTL time.Duration,
) *Service {
	return &Service{
		store:      store,
		sessions:   sessions,
		jwt:        jwt,
		audit:      audit,
		logger:     logger,
		metrics:    metrics,
		tokenTTL:   tokenTTL,
		sessionTTL: sessionTTL,
	}
}

// CreateInvite mints a new invite code. The plaintext code is returned once
// and never stored; only its bcrypt hash persists.
func (s *Service) CreateInvite(ctx context.Context, createdBy id.UserID, maxUses int, ttl time.Duration) (*Invite, string, error) {
	if maxUses < 1 {
		return nil, "", dErrors.New(dErrors.CodeInvalidInput, "invite must allow at least one use")
	}

	secretBytes := make([]byte, 16)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate invite secret")
	}
	secret := hex.EncodeToString(secretBytes)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash invite secret")
	}

	inv := &Invite{
		ID:            id.NewInviteID(),
		CodeHash:      string(hash),
		CreatedBy:     createdBy,
		RemainingUses: maxUses,
		CreatedAt:     time.Now(),
	}
	if ttl > 0 {
		expires := time.Now().Add(ttl)
		inv.ExpiresAt = &expires
	}

	if err := s.store.SaveInvite(ctx, inv); err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to save invite")
	}
	s.audit.Record(ctx, "invite.created", inv.ID.String(), createdBy.String())

	// Code format: "<invite id>.<secret>". The id locates the hash; the
	// secret proves possession.
	return inv, fmt.Sprintf("%s.%s", inv.ID.String(), secret), nil
}

// Register creates a contributor account from a valid invite code.
func (s *Service) Register(ctx context.Context, emailAddr, password, code string) (*User, error) {
	if len(password) < minPasswordLength {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "password must be at least 8 characters")
	}

	inv, err := s.redeemInvite(ctx, code)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	u, err := NewUser(emailAddr, email.DeriveDisplayName(emailAddr), string(hash))
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveUser(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
	}

	if err := s.store.ConsumeInviteUse(ctx, inv.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to consume invite use",
			"request_id", requestcontext.RequestID(ctx),
			"invite_id", inv.ID,
			"error", err.Error(),
		)
	}

	s.metrics.IncrementUsersCreated()
	s.audit.Record(ctx, "user.registered", u.ID.String(), inv.ID.String())
	return u, nil
}

func (s *Service) redeemInvite(ctx context.Context, code string) (*Invite, error) {
	invalid := dErrors.New(dErrors.CodeUnauthorized, "invalid invite code")

	idPart, secret, found := strings.Cut(code, ".")
	if !found {
		return nil, invalid
	}
	inviteID, err := id.ParseInviteID(idPart)
	if err != nil {
		return nil, invalid
	}

	inv, err := s.store.GetInvite(ctx, inviteID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, invalid
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load invite")
	}

	if inv.Expired(time.Now()) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invite code has expired")
	}
	if inv.RemainingUses < 1 {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invite code has no remaining uses")
	}
	if bcrypt.CompareHashAndPassword([]byte(inv.CodeHash), []byte(secret)) != nil {
		return nil, invalid
	}
	return inv, nil
}

// Login verifies credentials and opens a session. The returned token carries
// the user id, session id, and admin flag.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (string, *Session, error) {
	invalid := dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")

	u, err := s.store.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", nil, invalid
		}
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, invalid
	}

	now := time.Now()
	session := &Session{
		ID:        id.NewSessionID(),
		UserID:    u.ID,
		ClientIP:  requestcontext.ClientIP(ctx),
		Device:    device.ParseUserAgent(requestcontext.UserAgent(ctx)),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}

	token, err := s.jwt.GenerateAccessToken(u.ID, session.ID, u.IsAdmin, s.tokenTTL)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}

	s.audit.Record(ctx, "user.logged_in", u.ID.String(), session.Device)
	return token, session, nil
}

// Me returns the authenticated user's own record.
func (s *Service) Me(ctx context.Context, userID id.UserID) (*User, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}

// EnsureAdmin creates the bootstrap administrator account on first start.
// Idempotent: an existing account with the email is left untouched.
func (s *Service) EnsureAdmin(ctx context.Context, emailAddr, password string) error {
	if emailAddr == "" || password == "" {
		return nil
	}

	_, err := s.store.GetUserByEmail(ctx, emailAddr)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check admin account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash admin password")
	}
	u, err := NewUser(emailAddr, email.DeriveDisplayName(emailAddr), string(hash))
	if err != nil {
		return err
	}
	u.IsAdmin = true

	if err := s.store.SaveUser(ctx, u); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save admin account")
	}
	s.logger.InfoContext(ctx, "bootstrap admin account created", "email", emailAddr)
	return nil
}
