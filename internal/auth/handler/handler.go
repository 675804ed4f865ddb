package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"memoria/internal/auth"
	"memoria/internal/platform/metrics"
	"memoria/internal/platform/middleware"
	id "memoria/pkg/domain"
	dErrors "memoria/pkg/domain-errors"
	"memoria/pkg/platform/httputil"
	"memoria/pkg/requestcontext"
)

// Service defines the auth operations exposed over HTTP.
type Service interface {
	Register(ctx context.Context, email, password, code string) (*auth.User, error)
	Login(ctx context.Context, email, password string) (string, *auth.Session, error)
	Me(ctx context.Context, userID id.UserID) (*auth.User, error)
	CreateInvite(ctx context.Context, createdBy id.UserID, maxUses int, ttl time.Duration) (*auth.Invite, string, error)
}

// Handler handles registration, login, and invite endpoints.
type Handler struct {
	logger       *slog.Logger
	auth         Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(auth Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		auth:         auth,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.Recovery(h.logger))
		authRouter.Use(middleware.RequestID)
		authRouter.Use(middleware.RequestTime)
		authRouter.Use(middleware.Logger(h.logger))
		authRouter.Use(middleware.Timeout(30 * time.Second))
		authRouter.Use(middleware.ContentTypeJSON)
		authRouter.Use(middleware.Latency(h.metrics))
		authRouter.Use(middleware.ClientMetadata)

		authRouter.Post("/auth/register", h.handleRegister)
		authRouter.Post("/auth/login", h.handleLogin)

		authRouter.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
			authed.Get("/auth/me", h.handleMe)

			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireAdmin(h.logger))
				admin.Post("/auth/invites", h.handleCreateInvite)
			})
		})
	})
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	InviteCode string `json:"invite_code"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.DecodeJSON[registerRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	u, err := h.auth.Register(ctx, req.Email, req.Password, req.InviteCode)
	if err != nil {
		h.writeServiceError(ctx, w, "registration failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	Session     *auth.Session `json:"session"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.DecodeJSON[loginRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, session, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(ctx, w, "login failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		Session:     session,
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	u, err := h.auth.Me(ctx, userID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load account", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, u)
}

type createInviteRequest struct {
	MaxUses    int    `json:"max_uses"`
	TTLSeconds int    `json:"ttl_seconds,omitempty"`
}

type createInviteResponse struct {
	Invite *auth.Invite `json:"invite"`
	Code   string       `json:"code"`
}

func (h *Handler) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.DecodeJSON[createInviteRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	inv, code, err := h.auth.CreateInvite(ctx, requestcontext.UserID(ctx), req.MaxUses,
		time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create invite", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, createInviteResponse{Invite: inv, Code: code})
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
