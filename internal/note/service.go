package note

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,People,Preferences,Auditor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"memoria/internal/person"
	"memoria/internal/visibility"
	vismetrics "memoria/internal/visibility/metrics"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
	"memoria/pkg/platform/sentinel"
	stringsutil "memoria/pkg/platform/strings"
	"memoria/pkg/requestcontext"
)

// Store is the persistence port for notes and their person references.
type Store interface {
	SaveNote(ctx context.Context, n *Note) error
	GetNote(ctx context.Context, noteID id.NoteID) (*Note, error)
	ListNotes(ctx context.Context) ([]*Note, error)
	DeleteNote(ctx context.Context, noteID id.NoteID) error
	SaveReference(ctx context.Context, ref *Reference) error
	ListReferences(ctx context.Context, noteID id.NoteID) ([]*Reference, error)
	CreateNoteWithReferences(ctx context.Context, n *Note, refs []*Reference) error
}

// People supplies person records and the claim fact for the reveal gate.
type People interface {
	Get(ctx context.Context, personID id.PersonID) (*person.Person, error)
	HasClaim(ctx context.Context, personID id.PersonID) (bool, error)
}

// Preferences supplies the contributor and global layers of the resolution
// chain as raw storage values; empty means never configured.
type Preferences interface {
	GlobalValue(ctx context.Context) (string, error)
	ContributorValue(ctx context.Context, contributorID id.UserID) (string, error)
}

// Auditor records privacy-relevant mutations.
type Auditor interface {
	Record(ctx context.Context, action, subject, detail string)
}

var tracer = otel.Tracer("memoria/note")

// Service owns notes and the read path that turns stored references into
// identity-safe payloads. Resolution is reapplied on every read so live edits
// to any visibility layer take effect immediately; nothing here is cached.
type Service struct {
	store   Store
	people  People
	prefs   Preferences
	audit   Auditor
	logger  *slog.Logger
	metrics *vismetrics.Metrics
}

func NewService(store Store, people People, prefs Preferences, audit Auditor, logger *slog.Logger, metrics *vismetrics.Metrics) *Service {
	return &Service{
		store:   store,
		people:  people,
		prefs:   prefs,
		audit:   audit,
		logger:  logger,
		metrics: metrics,
	}
}

// ReferenceInput is one requested person mention.
type ReferenceInput struct {
	PersonID string
	Override string
}

// CreateInput carries a new note and its mentions.
type CreateInput struct {
	Title      string
	Body       string
	EventDate  time.Time
	References []ReferenceInput
}

// Create validates and persists a note with its references in one step.
// Overrides are checked against each person's base visibility: a contributor
// may only restrict, never loosen, what the person configured.
func (s *Service) Create(ctx context.Context, authorID id.UserID, in CreateInput) (*Note, error) {
	n, err := NewNote(authorID, in.Title, in.Body, in.EventDate)
	if err != nil {
		return nil, err
	}

	refs, err := s.buildReferences(ctx, n.ID, in.References)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateNoteWithReferences(ctx, n, refs); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save note")
	}
	s.audit.Record(ctx, "note.created", n.ID.String(), authorID.String())
	return n, nil
}

// AddReferences attaches more person mentions to an existing note. Only the
// note's author may do this.
func (s *Service) AddReferences(ctx context.Context, noteID id.NoteID, requesterID id.UserID, inputs []ReferenceInput) ([]*Reference, error) {
	n, err := s.getNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n.AuthorID != requesterID {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the note author may add references")
	}

	refs, err := s.buildReferences(ctx, noteID, inputs)
	if err != nil {
		return nil, err
	}

	for _, ref := range refs {
		if err := s.store.SaveReference(ctx, ref); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return nil, dErrors.New(dErrors.CodeConflict, "person is already referenced by this note")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save reference")
		}
		s.audit.Record(ctx, "note.reference_added", noteID.String(), ref.PersonID.String())
	}
	return refs, nil
}

// Delete removes a note. Allowed for the author and for admins.
func (s *Service) Delete(ctx context.Context, noteID id.NoteID, requesterID id.UserID, admin bool) error {
	n, err := s.getNote(ctx, noteID)
	if err != nil {
		return err
	}
	if n.AuthorID != requesterID && !admin {
		return dErrors.New(dErrors.CodeForbidden, "only the note author or an admin may delete a note")
	}
	if err := s.store.DeleteNote(ctx, noteID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete note")
	}
	s.audit.Record(ctx, "note.deleted", noteID.String(), requesterID.String())
	return nil
}

// Get returns one note with every mentioned person resolved and shaped.
func (s *Service) Get(ctx context.Context, noteID id.NoteID) (*View, error) {
	n, err := s.getNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, n)
}

// Timeline returns all notes in event-date order, each fully resolved.
func (s *Service) Timeline(ctx context.Context) ([]*View, error) {
	notes, err := s.store.ListNotes(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notes")
	}
	views := make([]*View, 0, len(notes))
	for _, n := range notes {
		view, err := s.buildView(ctx, n)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) getNote(ctx context.Context, noteID id.NoteID) (*Note, error) {
	n, err := s.store.GetNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "note not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load note")
	}
	return n, nil
}

// buildReferences validates requested mentions and the only-tighten rule.
// Duplicate person ids collapse to the first occurrence.
func (s *Service) buildReferences(ctx context.Context, noteID id.NoteID, inputs []ReferenceInput) ([]*Reference, error) {
	// Keyed on the trimmed id so padded input cannot detach an override from
	// its person once DedupeAndTrim has canonicalized the list.
	overrides := make(map[string]string, len(inputs))
	rawIDs := make([]string, 0, len(inputs))
	for _, in := range inputs {
		rawIDs = append(rawIDs, in.PersonID)
		trimmed := strings.TrimSpace(in.PersonID)
		if _, seen := overrides[trimmed]; !seen {
			overrides[trimmed] = in.Override
		}
	}

	refs := make([]*Reference, 0, len(inputs))
	for _, raw := range stringsutil.DedupeAndTrim(rawIDs) {
		personID, err := id.ParsePersonID(raw)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid person id")
		}

		p, err := s.people.Get(ctx, personID)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				return nil, dErrors.New(dErrors.CodeInvalidInput, "referenced person does not exist")
			}
			return nil, err
		}

		override := overrides[raw]
		if err := validateOverride(override, p.BaseVisibility); err != nil {
			return nil, err
		}

		ref, err := NewReference(noteID, personID, override)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// validateOverride enforces enum membership and the only-tighten rule against
// the person's configured base visibility. The resolver exposes the rank
// comparison but never enforces this; it is this collaborator's job.
func validateOverride(raw string, base visibility.Visibility) error {
	if raw == "" {
		return nil
	}
	v := visibility.Visibility(raw)
	if !v.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid visibility override")
	}
	if !visibility.MorePrivateOrEqual(v, base) {
		return dErrors.New(dErrors.CodeInvalidInput, "override may only restrict visibility, not loosen it")
	}
	return nil
}

// buildView resolves and shapes every reference of a note. The contributor
// and global layers are fetched concurrently with the reference list; a
// failed preference read degrades that layer to absent rather than failing
// the page, which at worst over-redacts.
func (s *Service) buildView(ctx context.Context, n *Note) (*View, error) {
	ctx, span := tracer.Start(ctx, "note.resolve_references",
		trace.WithAttributes(attribute.String("note.id", n.ID.String())))
	defer span.End()

	var (
		refs            []*Reference
		contributorPref string
		globalPref      string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		refs, err = s.store.ListReferences(gctx, n.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load references")
		}
		return nil
	})
	g.Go(func() error {
		value, err := s.prefs.ContributorValue(gctx, n.AuthorID)
		if err != nil {
			s.logger.WarnContext(gctx, "contributor preference unavailable, treating as absent",
				"request_id", requestcontext.RequestID(gctx),
				"author_id", n.AuthorID,
				"error", err.Error(),
			)
			return nil
		}
		contributorPref = value
		return nil
	})
	g.Go(func() error {
		value, err := s.prefs.GlobalValue(gctx)
		if err != nil {
			s.logger.WarnContext(gctx, "global preference unavailable, treating as absent",
				"request_id", requestcontext.RequestID(gctx),
				"error", err.Error(),
			)
			return nil
		}
		globalPref = value
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("note.reference_count", len(refs)))

	people := make([]*visibility.PersonPayload, 0, len(refs))
	for _, ref := range refs {
		payload := s.resolveReference(ctx, ref, contributorPref, globalPref)
		if payload != nil {
			people = append(people, payload)
		}
	}

	return &View{
		ID:        n.ID,
		AuthorID:  n.AuthorID,
		Title:     n.Title,
		Body:      n.Body,
		EventDate: n.EventDate,
		CreatedAt: n.CreatedAt,
		People:    people,
	}, nil
}

// resolveReference gathers the person record and claim fact concurrently,
// resolves the four layers, and shapes the payload. Any fetch failure drops
// the reference: partial data must never reveal more than complete data
// would.
func (s *Service) resolveReference(ctx context.Context, ref *Reference, contributorPref, globalPref string) *visibility.PersonPayload {
	var (
		p           *person.Person
		claimExists bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.people.Get(gctx, ref.PersonID)
		return err
	})
	g.Go(func() error {
		var err error
		claimExists, err = s.people.HasClaim(gctx, ref.PersonID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "reference withheld, person record unavailable",
			"request_id", requestcontext.RequestID(ctx),
			"person_id", ref.PersonID,
			"error", err.Error(),
		)
		s.metrics.IncrementGateDenial("unavailable")
		return nil
	}

	resolved := visibility.Resolve(visibility.Inputs{
		Reference:   ref.Override,
		Person:      string(p.BaseVisibility),
		Contributor: contributorPref,
		Global:      globalPref,
	})
	s.metrics.IncrementResolution(resolved.String())

	if !visibility.CanRevealIdentity(claimExists, resolved) {
		s.metrics.IncrementGateDenial(denialCause(claimExists, resolved))
		return nil
	}

	return visibility.ShapePersonPayload(visibility.PayloadInput{
		ClaimExists:   claimExists,
		PersonID:      p.ID.String(),
		CanonicalName: p.CanonicalName,
		Resolved:      resolved,
	})
}

func denialCause(claimExists bool, resolved visibility.Visibility) string {
	switch {
	case !claimExists:
		return "no_claim"
	case resolved == visibility.Removed:
		return "removed"
	default:
		return "pending"
	}
}
