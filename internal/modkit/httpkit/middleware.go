package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"ticketdesk/internal/platform/config"
	"ticketdesk/internal/platform/net/middleware"
)

// DefaultOrigins are the browser origins allowed when none are configured
var DefaultOrigins = []string{"http://localhost:5173", "https://mini-support-web.vercel.app"}

// StackOptions tunes CommonStack
type StackOptions struct {
	Origins []string
	Slow    time.Duration
	Timeout time.Duration
}

// StackOptionsFrom reads CORS_ORIGINS, SLOW_MS and TIMEOUT from cfg
func StackOptionsFrom(cfg config.Conf) StackOptions {
	return StackOptions{
		Origins: cfg.MayCSV("CORS_ORIGINS", DefaultOrigins),
		Slow:    time.Duration(cfg.MayInt("SLOW_MS", 500)) * time.Millisecond,
		Timeout: cfg.MayDuration("TIMEOUT", 30*time.Second),
	}
}

// CommonStack returns the root middleware slice, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if len(o.Origins) == 0 {
		o.Origins = DefaultOrigins
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogger,

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLog(o.Slow, nil),

		middleware.CORS(o.Origins),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
