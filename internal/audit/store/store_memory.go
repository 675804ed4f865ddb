package store

import (
	"context"
	"sort"
	"sync"

	"memoria/internal/audit"
	id "memoria/pkg/domain"
)

// MemoryStore is an in-memory audit store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByActor returns the actor's events, newest first.
func (s *MemoryStore) ListByActor(_ context.Context, actorID id.UserID) ([]*audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*audit.Event
	for i := range s.events {
		if s.events[i].ActorID == actorID {
			e := s.events[i]
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return out, nil
}
