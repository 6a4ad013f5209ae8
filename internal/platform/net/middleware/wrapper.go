// Package middleware is the HTTP middleware the API stacks on its root router:
// chi's stock handlers re-exported, plus CORS, request-scoped logging, the access log and panic recovery
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID reuses an incoming X-Request-Id or mints one
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d and answers 504 if nothing was written
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// Compress gzips/deflates compressible responses at level
func Compress(level int) func(http.Handler) http.Handler {
	return chimw.NewCompressor(level).Handler
}

// StripSlashes routes /tickets/ like /tickets
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// CORS lets the listed browser origins call the API
// requests from other origins, or without Origin, get no CORS headers
func CORS(origins []string) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", chimw.RequestIDHeader},
		ExposedHeaders: []string{chimw.RequestIDHeader},
		MaxAge:         300,
	})
}
