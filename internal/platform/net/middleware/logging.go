package middleware

import (
	"net/http"

	"ticketdesk/internal/platform/logger"
	pnet "ticketdesk/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger copies the chi request id into the logger context so every
// logger.C(ctx) line downstream carries request_id, and echoes it back in X-Request-ID
// Mount after RequestID
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := pnet.RequestID(r.Context())
		if rid == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(chimw.RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(logger.WithRequest(r.Context(), rid)))
	})
}
