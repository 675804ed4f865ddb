package store

import (
	"context"
	"sync"

	"memoria/internal/preference"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
)

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu           sync.RWMutex
	global       *preference.Preference
	contributors map[id.UserID]*preference.Preference
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		contributors: make(map[id.UserID]*preference.Preference),
	}
}

func (s *MemoryStore) SaveGlobal(_ context.Context, pref *preference.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *pref
	s.global = &cp
	return nil
}

func (s *MemoryStore) GetGlobal(_ context.Context) (*preference.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.global == nil {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.global
	return &cp, nil
}

func (s *MemoryStore) SaveContributor(_ context.Context, pref *preference.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *pref
	s.contributors[*pref.ContributorID] = &cp
	return nil
}

func (s *MemoryStore) GetContributor(_ context.Context, contributorID id.UserID) (*preference.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pref, ok := s.contributors[contributorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *pref
	return &cp, nil
}
