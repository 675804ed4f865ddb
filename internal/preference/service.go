package preference

import (
	"context"
	"errors"

	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
	"memoria/pkg/platform/sentinel"
)

// Store is the persistence port for visibility preferences.
type Store interface {
	SaveGlobal(ctx context.Context, pref *Preference) error
	GetGlobal(ctx context.Context) (*Preference, error)
	SaveContributor(ctx context.Context, pref *Preference) error
	GetContributor(ctx context.Context, contributorID id.UserID) (*Preference, error)
}

// Auditor records privacy-relevant mutations.
type Auditor interface {
	Record(ctx context.Context, action, subject, detail string)
}

// Service owns the global and per-contributor visibility defaults. Reads are
// total: an unset preference reads back as empty, which the resolver treats
// as a deferral.
type Service struct {
	store Store
	audit Auditor
}

func NewService(store Store, audit Auditor) *Service {
	return &Service{store: store, audit: audit}
}

// SetGlobal writes the sitewide default. Admin-only at the HTTP layer.
func (s *Service) SetGlobal(ctx context.Context, raw string) (*Preference, error) {
	pref, err := NewGlobal(raw)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveGlobal(ctx, pref); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save global preference")
	}
	s.audit.Record(ctx, "preference.global_changed", "global", raw)
	return pref, nil
}

// SetContributor writes a contributor's own default.
func (s *Service) SetContributor(ctx context.Context, contributorID id.UserID, raw string) (*Preference, error) {
	pref, err := NewContributor(contributorID, raw)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveContributor(ctx, pref); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save contributor preference")
	}
	s.audit.Record(ctx, "preference.contributor_changed", contributorID.String(), raw)
	return pref, nil
}

// GlobalValue returns the raw global default for the resolver, or the empty
// string when none has been set.
func (s *Service) GlobalValue(ctx context.Context) (string, error) {
	pref, err := s.store.GetGlobal(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", nil
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load global preference")
	}
	return string(pref.Visibility), nil
}

// ContributorValue returns the raw per-contributor default for the resolver,
// or the empty string when the contributor never set one.
func (s *Service) ContributorValue(ctx context.Context, contributorID id.UserID) (string, error) {
	pref, err := s.store.GetContributor(ctx, contributorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", nil
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contributor preference")
	}
	return string(pref.Visibility), nil
}

// GetContributor returns a contributor's stored preference for display.
func (s *Service) GetContributor(ctx context.Context, contributorID id.UserID) (*Preference, error) {
	pref, err := s.store.GetContributor(ctx, contributorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no visibility preference set")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contributor preference")
	}
	return pref, nil
}

// GetGlobal returns the stored sitewide default for display.
func (s *Service) GetGlobal(ctx context.Context) (*Preference, error) {
	pref, err := s.store.GetGlobal(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no global preference set")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load global preference")
	}
	return pref, nil
}
