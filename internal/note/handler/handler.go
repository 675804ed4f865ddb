package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"memoria/internal/note"
	"memoria/internal/platform/metrics"
	"memoria/internal/platform/middleware"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
	"memoria/pkg/platform/httputil"
	"memoria/pkg/requestcontext"
)

// eventDateLayout is the wire format for timeline dates.
const eventDateLayout = "2006-01-02"

// Service defines the note operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, authorID id.UserID, in note.CreateInput) (*note.Note, error)
	Get(ctx context.Context, noteID id.NoteID) (*note.View, error)
	Timeline(ctx context.Context) ([]*note.View, error)
	Delete(ctx context.Context, noteID id.NoteID, requesterID id.UserID, admin bool) error
	AddReferences(ctx context.Context, noteID id.NoteID, requesterID id.UserID, inputs []note.ReferenceInput) ([]*note.Reference, error)
}

// Handler handles note and timeline endpoints.
type Handler struct {
	logger       *slog.Logger
	notes        Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(notes Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		notes:        notes,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the note routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(noteRouter chi.Router) {
		noteRouter.Use(middleware.Recovery(h.logger))
		noteRouter.Use(middleware.RequestID)
		noteRouter.Use(middleware.RequestTime)
		noteRouter.Use(middleware.Logger(h.logger))
		noteRouter.Use(middleware.Timeout(30 * time.Second))
		noteRouter.Use(middleware.ContentTypeJSON)
		noteRouter.Use(middleware.Latency(h.metrics))
		noteRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

		noteRouter.Post("/notes", h.handleCreateNote)
		noteRouter.Get("/notes", h.handleTimeline)
		noteRouter.Get("/notes/{noteID}", h.handleGetNote)
		noteRouter.Delete("/notes/{noteID}", h.handleDeleteNote)
		noteRouter.Post("/notes/{noteID}/references", h.handleAddReferences)
	})
}

type referenceRequest struct {
	PersonID           string `json:"person_id"`
	VisibilityOverride string `json:"visibility_override,omitempty"`
}

type createNoteRequest struct {
	Title      string             `json:"title"`
	Body       string             `json:"body"`
	EventDate  string             `json:"event_date"`
	References []referenceRequest `json:"references,omitempty"`
}

func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authorID := requestcontext.UserID(ctx)
	if authorID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	req, err := httputil.DecodeJSON[createNoteRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	eventDate, err := time.Parse(eventDateLayout, req.EventDate)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "event_date must be YYYY-MM-DD"))
		return
	}

	n, err := h.notes.Create(ctx, authorID, note.CreateInput{
		Title:      req.Title,
		Body:       req.Body,
		EventDate:  eventDate,
		References: toReferenceInputs(req.References),
	})
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create note", err)
		return
	}

	h.metrics.IncrementNotesCreated()
	httputil.WriteJSON(w, http.StatusCreated, n)
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views, err := h.notes.Timeline(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load timeline", err)
		return
	}
	if views == nil {
		views = []*note.View{}
	}

	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID, err := id.ParseNoteID(chi.URLParam(r, "noteID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid note id"))
		return
	}

	view, err := h.notes.Get(ctx, noteID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get note", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID, err := id.ParseNoteID(chi.URLParam(r, "noteID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid note id"))
		return
	}

	err = h.notes.Delete(ctx, noteID, requestcontext.UserID(ctx), requestcontext.IsAdmin(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to delete note", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addReferencesRequest struct {
	References []referenceRequest `json:"references"`
}

func (h *Handler) handleAddReferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID, err := id.ParseNoteID(chi.URLParam(r, "noteID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid note id"))
		return
	}

	req, err := httputil.DecodeJSON[addReferencesRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if len(req.References) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "references cannot be empty"))
		return
	}

	refs, err := h.notes.AddReferences(ctx, noteID, requestcontext.UserID(ctx), toReferenceInputs(req.References))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to add references", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, refs)
}

func toReferenceInputs(reqs []referenceRequest) []note.ReferenceInput {
	inputs := make([]note.ReferenceInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, note.ReferenceInput{
			PersonID: r.PersonID,
			Override: r.VisibilityOverride,
		})
	}
	return inputs
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.GetCode(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
