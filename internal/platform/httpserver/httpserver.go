// Package httpserver owns the http.Server construction so timeout policy
// lives in one place.
package httpserver

import (
	"net/http"
	"time"
)

// Timeouts sized around the handler chain: every route runs under a 30s
// middleware timeout, so the server-level write deadline sits above it and
// only catches handlers that escaped the chain.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 35 * time.Second
	idleTimeout       = 2 * time.Minute
)

// New builds the server for the given router.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
