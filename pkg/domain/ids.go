// Package domain holds typed identifiers shared across modules.
//
// IDs are distinct UUID types so a person ID can never be passed where a note
// ID is expected. Construct via the Parse* functions at trust boundaries;
// direct conversion bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "memoria/pkg/domain-errors"
)

// Typed identifiers. Invariant: valid, non-nil UUIDs.
type (
	UserID      uuid.UUID
	PersonID    uuid.UUID
	NoteID      uuid.UUID
	ReferenceID uuid.UUID
	InviteID    uuid.UUID
	SessionID   uuid.UUID
)

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be the nil uuid")
	}
	return parsed, nil
}

// ParseUserID constructs a UserID from external input.
func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user")
	return UserID(id), err
}

// ParsePersonID constructs a PersonID from external input.
func ParsePersonID(s string) (PersonID, error) {
	id, err := parseUUID(s, "person")
	return PersonID(id), err
}

// ParseNoteID constructs a NoteID from external input.
func ParseNoteID(s string) (NoteID, error) {
	id, err := parseUUID(s, "note")
	return NoteID(id), err
}

// ParseReferenceID constructs a ReferenceID from external input.
func ParseReferenceID(s string) (ReferenceID, error) {
	id, err := parseUUID(s, "reference")
	return ReferenceID(id), err
}

// ParseInviteID constructs an InviteID from external input.
func ParseInviteID(s string) (InviteID, error) {
	id, err := parseUUID(s, "invite")
	return InviteID(id), err
}

// ParseSessionID constructs a SessionID from external input.
func ParseSessionID(s string) (SessionID, error) {
	id, err := parseUUID(s, "session")
	return SessionID(id), err
}

// New* mint fresh identifiers.

func NewUserID() UserID           { return UserID(uuid.New()) }
func NewPersonID() PersonID       { return PersonID(uuid.New()) }
func NewNoteID() NoteID           { return NoteID(uuid.New()) }
func NewReferenceID() ReferenceID { return ReferenceID(uuid.New()) }
func NewInviteID() InviteID       { return InviteID(uuid.New()) }
func NewSessionID() SessionID     { return SessionID(uuid.New()) }

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id PersonID) String() string    { return uuid.UUID(id).String() }
func (id NoteID) String() string      { return uuid.UUID(id).String() }
func (id ReferenceID) String() string { return uuid.UUID(id).String() }
func (id InviteID) String() string    { return uuid.UUID(id).String() }
func (id SessionID) String() string   { return uuid.UUID(id).String() }

func (id UserID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id PersonID) IsZero() bool  { return uuid.UUID(id) == uuid.Nil }
func (id NoteID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
