package person

import (
	"time"

	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
)

// Person is a living person who may be mentioned in notes. BaseVisibility is
// the lowest-precedence layer of the resolution chain and the always-present
// fallback.
type Person struct {
	ID             id.PersonID           `json:"id"`
	CanonicalName  string                `json:"canonical_name"`
	BaseVisibility visibility.Visibility `json:"base_visibility"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// Claim is a verified association between a person record and a contributor
// account. Its existence gates whether any identity detail may ever be shown.
type Claim struct {
	PersonID   id.PersonID `json:"person_id"`
	UserID     id.UserID   `json:"user_id"`
	VerifiedAt time.Time   `json:"verified_at"`
}

// New creates a Person with domain invariant validation. Base visibility
// starts at pending unless an explicit valid value is provided.
func New(canonicalName, baseVisibility string) (*Person, error) {
	if canonicalName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "canonical name cannot be empty")
	}
	base := visibility.Normalize(baseVisibility)

	now := time.Now()
	return &Person{
		ID:             id.NewPersonID(),
		CanonicalName:  canonicalName,
		BaseVisibility: base,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
