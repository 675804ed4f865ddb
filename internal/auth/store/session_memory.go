package store

import (
	"context"
	"sync"
	"time"

	"memoria/internal/auth"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
)

// MemorySessionStore keeps sessions in process memory. Expiry is checked on
// read; nothing sweeps stale entries, which is acceptable for dev setups.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*auth.Session
}

func NewMemorySessions() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[id.SessionID]*auth.Session)}
}

func (s *MemorySessionStore) SaveSession(_ context.Context, session *auth.Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *MemorySessionStore) GetSession(_ context.Context, sessionID id.SessionID) (*auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, sentinel.ErrExpired
	}
	cp := *session
	return &cp, nil
}

func (s *MemorySessionStore) DeleteSession(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}
