package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"memoria/internal/platform/metrics"
	"memoria/internal/platform/middleware"
	"memoria/internal/preference"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
	"memoria/pkg/platform/httputil"
	"memoria/pkg/requestcontext"
)

// Service defines the preference operations exposed over HTTP.
type Service interface {
	SetGlobal(ctx context.Context, raw string) (*preference.Preference, error)
	GetGlobal(ctx context.Context) (*preference.Preference, error)
	SetContributor(ctx context.Context, contributorID id.UserID, raw string) (*preference.Preference, error)
	GetContributor(ctx context.Context, contributorID id.UserID) (*preference.Preference, error)
}

// Handler handles the visibility preference endpoints.
type Handler struct {
	logger       *slog.Logger
	prefs        Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(prefs Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		prefs:        prefs,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the preference routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(base chi.Router) {
		base.Use(middleware.Recovery(h.logger))
		base.Use(middleware.RequestID)
		base.Use(middleware.RequestTime)
		base.Use(middleware.Logger(h.logger))
		base.Use(middleware.Timeout(30 * time.Second))
		base.Use(middleware.ContentTypeJSON)
		base.Use(middleware.Latency(h.metrics))
		base.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

		base.Put("/settings/visibility", h.handleSetContributor)
		base.Get("/settings/visibility", h.handleGetContributor)

		base.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin(h.logger))
			admin.Put("/admin/settings/visibility", h.handleSetGlobal)
			admin.Get("/admin/settings/visibility", h.handleGetGlobal)
		})
	})
}

type setPreferenceRequest struct {
	Visibility string `json:"visibility"`
}

func (h *Handler) handleSetContributor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsZero() {
		h.logger.ErrorContext(ctx, "user id missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	req, err := httputil.DecodeJSON[setPreferenceRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	pref, err := h.prefs.SetContributor(ctx, userID, req.Visibility)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to set contributor preference", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pref)
}

func (h *Handler) handleGetContributor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	pref, err := h.prefs.GetContributor(ctx, userID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get contributor preference", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pref)
}

func (h *Handler) handleSetGlobal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.DecodeJSON[setPreferenceRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	pref, err := h.prefs.SetGlobal(ctx, req.Visibility)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to set global preference", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pref)
}

func (h *Handler) handleGetGlobal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pref, err := h.prefs.GetGlobal(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get global preference", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pref)
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
