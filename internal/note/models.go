package note

import (
	"time"

	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
)

// Note is one contributed memory, positioned on the timeline by event date.
type Note struct {
	ID        id.NoteID `json:"id"`
	AuthorID  id.UserID `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	EventDate time.Time `json:"event_date"`
	CreatedAt time.Time `json:"created_at"`
}

// Reference links a note to a mentioned person. Override is the raw per-note
// visibility value, empty when the author set none; it is stored raw and
// normalized at resolution time like every other layer.
type Reference struct {
	ID        id.ReferenceID `json:"id"`
	NoteID    id.NoteID      `json:"note_id"`
	PersonID  id.PersonID    `json:"person_id"`
	Override  string         `json:"visibility_override,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// View is a note prepared for serialization: every mentioned person has been
// resolved and shaped, and references shaped to nil are already gone.
type View struct {
	ID        id.NoteID                   `json:"id"`
	AuthorID  id.UserID                   `json:"author_id"`
	Title     string                      `json:"title"`
	Body      string                      `json:"body"`
	EventDate time.Time                   `json:"event_date"`
	CreatedAt time.Time                   `json:"created_at"`
	People    []*visibility.PersonPayload `json:"people"`
}

// NewNote creates a Note with domain invariant validation.
func NewNote(authorID id.UserID, title, body string, eventDate time.Time) (*Note, error) {
	if authorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "note requires an author")
	}
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "note title cannot be empty")
	}
	if body == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "note body cannot be empty")
	}
	if eventDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "note requires an event date")
	}
	return &Note{
		ID:        id.NewNoteID(),
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		EventDate: eventDate,
		CreatedAt: time.Now(),
	}, nil
}

// NewReference creates a Reference. Override validity against the person's
// base visibility is the service's job; this only checks shape.
func NewReference(noteID id.NoteID, personID id.PersonID, override string) (*Reference, error) {
	if noteID.IsZero() || personID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reference requires a note and a person")
	}
	return &Reference{
		ID:        id.NewReferenceID(),
		NoteID:    noteID,
		PersonID:  personID,
		Override:  override,
		CreatedAt: time.Now(),
	}, nil
}
