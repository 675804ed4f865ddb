package preference

import (
	"time"

	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
)

// Scope identifies which layer of the resolution chain a preference feeds.
// It is a closed two-member enum: a preference is either the sitewide default
// or one contributor's default. The pairing rule is structural, not advisory:
// a contributor-scoped preference always carries the contributor ID and a
// global one never does.
type Scope string

const (
	ScopeGlobal      Scope = "global"
	ScopeContributor Scope = "contributor"
)

func (s Scope) IsValid() bool {
	return s == ScopeGlobal || s == ScopeContributor
}

// Preference is a default visibility for one scope. ContributorID is set
// exactly when Scope is contributor.
type Preference struct {
	Scope         Scope                 `json:"scope"`
	ContributorID *id.UserID            `json:"contributor_id,omitempty"`
	Visibility    visibility.Visibility `json:"visibility"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// NewGlobal builds the sitewide default preference.
func NewGlobal(raw string) (*Preference, error) {
	v, err := parseVisibility(raw)
	if err != nil {
		return nil, err
	}
	return &Preference{
		Scope:      ScopeGlobal,
		Visibility: v,
		UpdatedAt:  time.Now(),
	}, nil
}

// NewContributor builds a per-contributor default preference.
func NewContributor(contributorID id.UserID, raw string) (*Preference, error) {
	if contributorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contributor preference requires a contributor id")
	}
	v, err := parseVisibility(raw)
	if err != nil {
		return nil, err
	}
	return &Preference{
		Scope:         ScopeContributor,
		ContributorID: &contributorID,
		Visibility:    v,
		UpdatedAt:     time.Now(),
	}, nil
}

// parseVisibility enforces enum membership. Writing a preference is a trust
// boundary, so unknown values are rejected rather than normalized.
func parseVisibility(raw string) (visibility.Visibility, error) {
	v := visibility.Visibility(raw)
	if !v.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid visibility value")
	}
	return v, nil
}
