package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"memoria/internal/platform/middleware"
	"memoria/internal/preference"
	"memoria/internal/preference/store"
	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	"memoria/pkg/testutil"
)

type nopAuditor struct{}

func (nopAuditor) Record(context.Context, string, string, string) {}

type stubValidator struct {
	claims *middleware.JWTClaims
}

func (v *stubValidator) ValidateToken(string) (*middleware.JWTClaims, error) {
	return v.claims, nil
}

func newTestRouter(userID id.UserID, admin bool) http.Handler {
	svc := preference.NewService(store.NewMemory(), nopAuditor{})
	validator := &stubValidator{claims: &middleware.JWTClaims{
		UserID:    userID,
		SessionID: id.NewSessionID(),
		Admin:     admin,
	}}
	h := New(svc, slog.Default(), nil, validator)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}

func TestContributorPreference(t *testing.T) {
	userID := id.NewUserID()
	router := newTestRouter(userID, false)

	t.Run("get before set returns not found", func(t *testing.T) {
		req := authed(testutil.NewRequest(t, http.MethodGet, "/settings/visibility"))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("set then get", func(t *testing.T) {
		req := authed(testutil.NewJSONRequest(t, http.MethodPut, "/settings/visibility",
			map[string]string{"visibility": "anonymized"}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		pref := testutil.UnmarshalResponse[preference.Preference](t, rr)
		assert.Equal(t, preference.ScopeContributor, pref.Scope)
		assert.Equal(t, visibility.Anonymized, pref.Visibility)

		req = authed(testutil.NewRequest(t, http.MethodGet, "/settings/visibility"))
		rr = testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("unknown value rejected", func(t *testing.T) {
		req := authed(testutil.NewJSONRequest(t, http.MethodPut, "/settings/visibility",
			map[string]string{"visibility": "secret"}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
	})

	t.Run("requires auth", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, "/settings/visibility",
			map[string]string{"visibility": "approved"})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestGlobalPreference(t *testing.T) {
	adminRouter := newTestRouter(id.NewUserID(), true)

	t.Run("set then get", func(t *testing.T) {
		req := authed(testutil.NewJSONRequest(t, http.MethodPut, "/admin/settings/visibility",
			map[string]string{"visibility": "blurred"}))
		rr := testutil.DoRequest(adminRouter, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		pref := testutil.UnmarshalResponse[preference.Preference](t, rr)
		assert.Equal(t, preference.ScopeGlobal, pref.Scope)
		assert.Nil(t, pref.ContributorID)
		assert.Equal(t, visibility.Blurred, pref.Visibility)

		req = authed(testutil.NewRequest(t, http.MethodGet, "/admin/settings/visibility"))
		rr = testutil.DoRequest(adminRouter, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("requires admin", func(t *testing.T) {
		router := newTestRouter(id.NewUserID(), false)
		req := authed(testutil.NewJSONRequest(t, http.MethodPut, "/admin/settings/visibility",
			map[string]string{"visibility": "blurred"}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})
}
