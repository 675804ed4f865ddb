package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"memoria/internal/person"
	"memoria/internal/platform/metrics"
	"memoria/internal/platform/middleware"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
	"memoria/pkg/platform/httputil"
	"memoria/pkg/requestcontext"
)

// Service defines the person operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, canonicalName, baseVisibility string) (*person.Person, error)
	Get(ctx context.Context, personID id.PersonID) (*person.Person, error)
	List(ctx context.Context) ([]*person.Person, error)
	SetVisibility(ctx context.Context, personID id.PersonID, raw string) (*person.Person, error)
	RecordClaim(ctx context.Context, personID id.PersonID, userID id.UserID) (*person.Claim, error)
	RemoveClaim(ctx context.Context, personID id.PersonID) error
}

// Handler handles the admin person-management endpoints.
type Handler struct {
	logger       *slog.Logger
	people       Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(people Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		people:       people,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the admin person routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(middleware.Recovery(h.logger))
		adminRouter.Use(middleware.RequestID)
		adminRouter.Use(middleware.RequestTime)
		adminRouter.Use(middleware.Logger(h.logger))
		adminRouter.Use(middleware.Timeout(30 * time.Second))
		adminRouter.Use(middleware.ContentTypeJSON)
		adminRouter.Use(middleware.Latency(h.metrics))
		adminRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		adminRouter.Use(middleware.RequireAdmin(h.logger))

		adminRouter.Post("/admin/people", h.handleCreatePerson)
		adminRouter.Get("/admin/people", h.handleListPeople)
		adminRouter.Get("/admin/people/{personID}", h.handleGetPerson)
		adminRouter.Put("/admin/people/{personID}/visibility", h.handleSetVisibility)
		adminRouter.Post("/admin/people/{personID}/claim", h.handleRecordClaim)
		adminRouter.Delete("/admin/people/{personID}/claim", h.handleRemoveClaim)
	})
}

type createPersonRequest struct {
	CanonicalName  string `json:"canonical_name"`
	BaseVisibility string `json:"base_visibility"`
}

func (h *Handler) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.DecodeJSON[createPersonRequest](r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid create person request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	p, err := h.people.Create(ctx, req.CanonicalName, req.BaseVisibility)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create person", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleListPeople(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	people, err := h.people.List(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list people", err)
		return
	}
	if people == nil {
		people = []*person.Person{}
	}

	httputil.WriteJSON(w, http.StatusOK, people)
}

func (h *Handler) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personID, err := id.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	p, err := h.people.Get(ctx, personID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get person", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, p)
}

type setVisibilityRequest struct {
	Visibility string `json:"visibility"`
}

func (h *Handler) handleSetVisibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personID, err := id.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	req, err := httputil.DecodeJSON[setVisibilityRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.people.SetVisibility(ctx, personID, req.Visibility)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to set person visibility", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, p)
}

type recordClaimRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) handleRecordClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personID, err := id.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	req, err := httputil.DecodeJSON[recordClaimRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid user id"))
		return
	}

	claim, err := h.people.RecordClaim(ctx, personID, userID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to record claim", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, claim)
}

func (h *Handler) handleRemoveClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personID, err := id.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	if err := h.people.RemoveClaim(ctx, personID); err != nil {
		h.writeServiceError(ctx, w, "failed to remove claim", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError logs at the right severity and writes the domain error.
// Internal failures are logged as errors; client mistakes as warnings.
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
