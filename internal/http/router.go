// Package http composes the module handlers into the server's router.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "memoria/internal/auth/handler"
	notehandler "memoria/internal/note/handler"
	personhandler "memoria/internal/person/handler"
	"memoria/internal/platform/redis"
	preferencehandler "memoria/internal/preference/handler"
)

// Handlers groups everything the router mounts. Each handler manages its own
// middleware chain, so composition here stays declarative.
type Handlers struct {
	Auth       *authhandler.Handler
	Person     *personhandler.Handler
	Preference *preferencehandler.Handler
	Note       *notehandler.Handler
}

// NewRouter wires all endpoints plus the health and metrics probes.
// db and cache may be nil when running on in-memory stores; health then
// only reports process liveness.
func NewRouter(h Handlers, db *sql.DB, cache *redis.Client) *chi.Mux {
	r := chi.NewRouter()

	h.Auth.Register(r)
	h.Person.Register(r)
	h.Preference.Register(r)
	h.Note.Register(r)

	r.Get("/healthz", healthHandler(db, cache))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func healthHandler(db *sql.DB, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		if err := cache.Health(r.Context()); err != nil {
			http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
