// Package middleware provides the HTTP middleware wired in front of the
// portfolio API: CORS, a request body cap and structured request logging.
package middleware

import (
	"net/http"
	"time"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that only lets allowedOrigins call the
// API from a browser. Each entry must be a full origin (scheme + host, no
// trailing slash). An empty list allows no cross-origin caller at all, which
// is what a production deployment without FRONTEND_URL gets.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}
	// rs/cors treats an empty list as "*".
	if len(allowedOrigins) == 0 {
		opts.AllowOriginFunc = func(string) bool { return false }
	}
	c := cors.New(opts)
	return c.Handler
}
