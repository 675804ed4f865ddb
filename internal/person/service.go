package person

import (
	"context"
	"errors"
	"time"

	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
	"memoria/pkg/platform/sentinel"
)

// Store is the persistence port for people and claims.
type Store interface {
	Save(ctx context.Context, p *Person) error
	Get(ctx context.Context, personID id.PersonID) (*Person, error)
	List(ctx context.Context) ([]*Person, error)
	SetVisibility(ctx context.Context, personID id.PersonID, v visibility.Visibility, updatedAt time.Time) error
	SaveClaim(ctx context.Context, claim *Claim) error
	DeleteClaim(ctx context.Context, personID id.PersonID) error
	GetClaim(ctx context.Context, personID id.PersonID) (*Claim, error)
}

// Auditor records privacy-relevant mutations.
type Auditor interface {
	Record(ctx context.Context, action, subject, detail string)
}

// Service owns person records and claims. It keeps orchestration out of
// handlers and translates store sentinels into domain errors.
type Service struct {
	store Store
	audit Auditor
}

func NewService(store Store, audit Auditor) *Service {
	return &Service{store: store, audit: audit}
}

// Create registers a new person record.
func (s *Service) Create(ctx context.Context, canonicalName, baseVisibility string) (*Person, error) {
	p, err := New(canonicalName, baseVisibility)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save person")
	}
	s.audit.Record(ctx, "person.created", p.ID.String(), string(p.BaseVisibility))
	return p, nil
}

// Get fetches one person record.
func (s *Service) Get(ctx context.Context, personID id.PersonID) (*Person, error) {
	p, err := s.store.Get(ctx, personID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}
	return p, nil
}

// List returns all person records.
func (s *Service) List(ctx context.Context) ([]*Person, error) {
	people, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list people")
	}
	return people, nil
}

// SetVisibility updates a person's base visibility. The raw value must be a
// member of the enum: an admin explicitly setting a value is a trust boundary,
// unlike storage reads where unknowns silently defer.
func (s *Service) SetVisibility(ctx context.Context, personID id.PersonID, raw string) (*Person, error) {
	v := visibility.Visibility(raw)
	if !v.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid visibility value")
	}
	if err := s.store.SetVisibility(ctx, personID, v, time.Now()); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update visibility")
	}
	s.audit.Record(ctx, "person.visibility_changed", personID.String(), raw)
	return s.Get(ctx, personID)
}

// RecordClaim links a person record to a verified contributor account.
func (s *Service) RecordClaim(ctx context.Context, personID id.PersonID, userID id.UserID) (*Claim, error) {
	if _, err := s.Get(ctx, personID); err != nil {
		return nil, err
	}
	claim := &Claim{
		PersonID:   personID,
		UserID:     userID,
		VerifiedAt: time.Now(),
	}
	if err := s.store.SaveClaim(ctx, claim); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "person is already claimed")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save claim")
	}
	s.audit.Record(ctx, "person.claimed", personID.String(), userID.String())
	return claim, nil
}

// RemoveClaim severs the verified link. Identity reveal fails closed for the
// person from the next request onward.
func (s *Service) RemoveClaim(ctx context.Context, personID id.PersonID) error {
	if err := s.store.DeleteClaim(ctx, personID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "claim not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete claim")
	}
	s.audit.Record(ctx, "person.claim_removed", personID.String(), "")
	return nil
}

// HasClaim reports the claim fact consumed by the visibility reveal gate.
func (s *Service) HasClaim(ctx context.Context, personID id.PersonID) (bool, error) {
	_, err := s.store.GetClaim(ctx, personID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load claim")
	}
	return true, nil
}
