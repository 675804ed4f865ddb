package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"memoria/internal/person"
	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
)

// MemoryStore keeps people and claims in process memory. Used in tests and
// when no Postgres DSN is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	people map[id.PersonID]*person.Person
	claims map[id.PersonID]*person.Claim
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		people: make(map[id.PersonID]*person.Person),
		claims: make(map[id.PersonID]*person.Claim),
	}
}

func (s *MemoryStore) Save(_ context.Context, p *person.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.people[p.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, personID id.PersonID) (*person.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.people[personID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*person.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	people := make([]*person.Person, 0, len(s.people))
	for _, p := range s.people {
		cp := *p
		people = append(people, &cp)
	}
	sort.Slice(people, func(i, j int) bool {
		return people[i].CreatedAt.Before(people[j].CreatedAt)
	})
	return people, nil
}

func (s *MemoryStore) SetVisibility(_ context.Context, personID id.PersonID, v visibility.Visibility, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.people[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.BaseVisibility = v
	p.UpdatedAt = updatedAt
	return nil
}

func (s *MemoryStore) SaveClaim(_ context.Context, claim *person.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.claims[claim.PersonID]; exists {
		return sentinel.ErrConflict
	}
	cp := *claim
	s.claims[claim.PersonID] = &cp
	return nil
}

func (s *MemoryStore) DeleteClaim(_ context.Context, personID id.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[personID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.claims, personID)
	return nil
}

func (s *MemoryStore) GetClaim(_ context.Context, personID id.PersonID) (*person.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claim, ok := s.claims[personID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *claim
	return &cp, nil
}
