package store

import (
	"context"
	"strings"
	"sync"

	"memoria/internal/auth"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
)

// MemoryStore keeps users and invites in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[id.UserID]*auth.User
	byEmail map[string]id.UserID
	invites map[id.InviteID]*auth.Invite
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		users:   make(map[id.UserID]*auth.User),
		byEmail: make(map[string]id.UserID),
		invites: make(map[id.InviteID]*auth.Invite),
	}
}

func (s *MemoryStore) SaveUser(_ context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if existing, ok := s.byEmail[key]; ok && existing != u.ID {
		return sentinel.ErrConflict
	}
	cp := *u
	s.users[u.ID] = &cp
	s.byEmail[key] = u.ID
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, userID id.UserID) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.users[userID]
	return &cp, nil
}

func (s *MemoryStore) SaveInvite(_ context.Context, inv *auth.Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.invites[inv.ID] = &cp
	return nil
}

func (s *MemoryStore) GetInvite(_ context.Context, inviteID id.InviteID) (*auth.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invites[inviteID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (s *MemoryStore) ConsumeInviteUse(_ context.Context, inviteID id.InviteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invites[inviteID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if inv.RemainingUses < 1 {
		return sentinel.ErrAlreadyUsed
	}
	inv.RemainingUses--
	return nil
}
