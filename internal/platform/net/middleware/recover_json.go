package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "ticketdesk/internal/platform/errors"
	"ticketdesk/internal/platform/logger"
	pnet "ticketdesk/internal/platform/net"
	phttp "ticketdesk/internal/platform/net/http"
)

// RecoverJSON converts panics into the standard 500 failure body and logs the stack with request id
// http.ErrAbortHandler is re-panicked so net/http can abort the connection
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}

			// format stack like chi recover
			lines := strings.Split(string(debug.Stack()), "\n")
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msgf("panic recovered\n%s", strings.Join(lines, "\n\t"))

			status, body := pnet.Failure(perr.PanicErrf("panic: %v", v))
			phttp.JSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
