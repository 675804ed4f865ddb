package store

import (
	"context"
	"sort"
	"sync"

	"memoria/internal/note"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
)

// MemoryStore keeps notes and references in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[id.NoteID]*note.Note
	refs  map[id.NoteID][]*note.Reference
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		notes: make(map[id.NoteID]*note.Note),
		refs:  make(map[id.NoteID][]*note.Reference),
	}
}

func (s *MemoryStore) SaveNote(_ context.Context, n *note.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.notes[n.ID] = &cp
	return nil
}

func (s *MemoryStore) GetNote(_ context.Context, noteID id.NoteID) (*note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[noteID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

// ListNotes returns all notes in timeline order: event date, then creation
// time for same-day notes.
func (s *MemoryStore) ListNotes(_ context.Context) ([]*note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make([]*note.Note, 0, len(s.notes))
	for _, n := range s.notes {
		cp := *n
		notes = append(notes, &cp)
	}
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].EventDate.Equal(notes[j].EventDate) {
			return notes[i].EventDate.Before(notes[j].EventDate)
		}
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *MemoryStore) DeleteNote(_ context.Context, noteID id.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[noteID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.notes, noteID)
	delete(s.refs, noteID)
	return nil
}

func (s *MemoryStore) SaveReference(_ context.Context, ref *note.Reference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.refs[ref.NoteID] {
		if existing.PersonID == ref.PersonID {
			return sentinel.ErrConflict
		}
	}
	cp := *ref
	s.refs[ref.NoteID] = append(s.refs[ref.NoteID], &cp)
	return nil
}

func (s *MemoryStore) ListReferences(_ context.Context, noteID id.NoteID) ([]*note.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]*note.Reference, 0, len(s.refs[noteID]))
	for _, ref := range s.refs[noteID] {
		cp := *ref
		refs = append(refs, &cp)
	}
	return refs, nil
}

func (s *MemoryStore) CreateNoteWithReferences(ctx context.Context, n *note.Note, refs []*note.Reference) error {
	if err := s.SaveNote(ctx, n); err != nil {
		return err
	}
	for _, ref := range refs {
		if err := s.SaveReference(ctx, ref); err != nil {
			return err
		}
	}
	return nil
}
