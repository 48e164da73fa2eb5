// Package middleware provides the HTTP middleware chain for the Heritage
// Iron server: session loading, auth gates, CSRF, rate limiting, panic
// recovery, security headers, and request logging.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder notes the status a handler wrote so the request log can
// include it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wrote {
		sr.status = code
		sr.wrote = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write records the implicit 200 when a handler never calls WriteHeader.
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.wrote {
		sr.status = http.StatusOK
		sr.wrote = true
	}
	return sr.ResponseWriter.Write(b)
}

// Logger emits one slog line per request: method, path, status, elapsed
// time, and the remote address.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start).String(),
			"remote", r.RemoteAddr,
		)
	})
}
