package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"ticketdesk/internal/platform/logger"
)

// AccessLog writes one "request" line per request
// 5xx responses and requests slower than slow log at warn; slow <= 0 never marks slow
// the line goes to log when set, to the request-scoped root logger otherwise
func AccessLog(slow time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(start)

			l := logger.C(r.Context())
			if log != nil {
				ll := log.With().Str("request_id", logger.RequestID(r.Context())).Logger()
				l = &ll
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			isSlow := slow > 0 && took >= slow
			evt := l.Info()
			if isSlow || status >= http.StatusInternalServerError {
				evt = l.Warn()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("took", took).
				Bool("slow", isSlow).
				Msg("request")
		})
	}
}
