package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoria/internal/auth"
	"memoria/internal/auth/store"
	jwttoken "memoria/internal/jwt_token"
	id "memoria/pkg/domain"
	"memoria/pkg/testutil"
)

type nopAuditor struct{}

func (nopAuditor) Record(context.Context, string, string, string) {}

type fixture struct {
	router http.Handler
	svc    *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwt := jwttoken.NewJWTService("test-signing-key", "memoria")
	svc := auth.NewService(
		store.NewMemory(),
		store.NewMemorySessions(),
		jwt,
		nopAuditor{},
		logger,
		nil,
		15*time.Minute,
		24*time.Hour,
	)

	h := New(svc, logger, nil, jwttoken.NewJWTServiceAdapter(jwt))
	r := chi.NewRouter()
	h.Register(r)
	return &fixture{router: r, svc: svc}
}

func (f *fixture) mintInvite(t *testing.T) string {
	t.Helper()
	_, code, err := f.svc.CreateInvite(context.Background(), id.NewUserID(), 1, time.Hour)
	require.NoError(t, err)
	return code
}

func (f *fixture) register(t *testing.T, email, password string) *auth.User {
	t.Helper()
	code := f.mintInvite(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"email":       email,
		"password":    password,
		"invite_code": code,
	})
	rr := testutil.DoRequest(f.router, req)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return testutil.UnmarshalResponse[auth.User](t, rr)
}

func (f *fixture) login(t *testing.T, email, password string) string {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	rr := testutil.DoRequest(f.router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]any](t, rr)
	token, _ := (*resp)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	u := f.register(t, "miriam.adler@example.org", "password123")
	assert.Equal(t, "Miriam Adler", u.DisplayName)

	t.Run("login returns bearer token", func(t *testing.T) {
		token := f.login(t, "miriam.adler@example.org", "password123")

		req := testutil.NewRequest(t, http.MethodGet, "/auth/me")
		req.Header.Set("Authorization", "Bearer "+token)
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		me := testutil.UnmarshalResponse[auth.User](t, rr)
		assert.Equal(t, u.ID, me.ID)
	})

	t.Run("bad invite code rejected", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]string{
			"email":       "other@example.org",
			"password":    "password123",
			"invite_code": "bogus.code",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("bad credentials rejected", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "miriam.adler@example.org",
			"password": "wrong",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("me requires auth", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/auth/me")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestCreateInviteEndpoint(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.EnsureAdmin(context.Background(), "admin@example.org", "admin-password"))
	adminToken := f.login(t, "admin@example.org", "admin-password")

	t.Run("admin mints invite", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/invites", map[string]any{
			"max_uses": 2,
		})
		req.Header.Set("Authorization", "Bearer "+adminToken)
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[map[string]any](t, rr)
		code, _ := (*resp)["code"].(string)
		assert.NotEmpty(t, code)

		regReq := testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]string{
			"email":       "invited@example.org",
			"password":    "password123",
			"invite_code": code,
		})
		regRR := testutil.DoRequest(f.router, regReq)
		testutil.AssertStatus(t, regRR, http.StatusCreated)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		f.register(t, "pleb@example.org", "password123")
		token := f.login(t, "pleb@example.org", "password123")

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/invites", map[string]any{
			"max_uses": 1,
		})
		req.Header.Set("Authorization", "Bearer "+token)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})
}
