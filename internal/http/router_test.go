package http

import (
	"context"
	"io"
	"log/slog"
	nethttp "net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"memoria/internal/auth"
	authhandler "memoria/internal/auth/handler"
	authstore "memoria/internal/auth/store"
	jwttoken "memoria/internal/jwt_token"
	"memoria/internal/note"
	notehandler "memoria/internal/note/handler"
	notestore "memoria/internal/note/store"
	"memoria/internal/person"
	personhandler "memoria/internal/person/handler"
	personstore "memoria/internal/person/store"
	"memoria/internal/preference"
	preferencehandler "memoria/internal/preference/handler"
	preferencestore "memoria/internal/preference/store"
	"memoria/pkg/testutil"
)

type nopAuditor struct{}

func (nopAuditor) Record(context.Context, string, string, string) {}

func TestRouterComposition(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwt := jwttoken.NewJWTService("test-signing-key", "memoria")
	validator := jwttoken.NewJWTServiceAdapter(jwt)

	personSvc := person.NewService(personstore.NewMemory(), nopAuditor{})
	prefSvc := preference.NewService(preferencestore.NewMemory(), nopAuditor{})
	noteSvc := note.NewService(notestore.NewMemory(), personSvc, prefSvc, nopAuditor{}, logger, nil)
	authSvc := auth.NewService(authstore.NewMemory(), authstore.NewMemorySessions(), jwt,
		nopAuditor{}, logger, nil, 15*time.Minute, 24*time.Hour)

	router := NewRouter(Handlers{
		Auth:       authhandler.New(authSvc, logger, nil, validator),
		Person:     personhandler.New(personSvc, logger, nil, validator),
		Preference: preferencehandler.New(prefSvc, logger, nil, validator),
		Note:       notehandler.New(noteSvc, logger, nil, validator),
	}, nil, nil)

	t.Run("healthz", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, nethttp.MethodGet, "/healthz"))
		assert.Equal(t, nethttp.StatusOK, rr.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, nethttp.MethodGet, "/metrics"))
		assert.Equal(t, nethttp.StatusOK, rr.Code)
	})

	t.Run("domain routes are mounted and gated", func(t *testing.T) {
		for _, path := range []string{"/notes", "/admin/people", "/settings/visibility", "/auth/me"} {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, nethttp.MethodGet, path))
			assert.Equal(t, nethttp.StatusUnauthorized, rr.Code, path)
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, nethttp.MethodGet, "/nope"))
		assert.Equal(t, nethttp.StatusNotFound, rr.Code)
	})
}
