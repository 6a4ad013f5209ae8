// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"strings"
	"time"

	"ticketdesk/internal/core/version"
	modkit "ticketdesk/internal/modkit"
	"ticketdesk/internal/modkit/httpkit"
	"ticketdesk/internal/platform/store"
	str "ticketdesk/internal/platform/strings"

	metahttp "ticketdesk/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
// probes live at the root so load balancers find them at /health
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	extra := b.Routes
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName:  version.Info().Service,
			StartedAt:    m.startedAt,
			PG:           pinger(deps.PG),
			ReadyTimeout: deps.Cfg.MayDuration("READY_TIMEOUT", 2*time.Second),
		})
		extra(r)
	}

	return m
}

// pinger exposes the store's Ping when it has one; fakes and wrappers may not
func pinger(pg any) store.Pinger {
	if p, ok := pg.(store.Pinger); ok {
		return p
	}
	return nil
}

// MountRoutes implements the modkit.Module interface
// an empty prefix keeps the probes at the root
func (m *Module) MountRoutes(r httpkit.Router) {
	m.deps.Log.Debug().Str("module", m.Name()).Str("prefix", m.Prefix()).Msg("mounting module")
	httpkit.MountUnder(r, m.prefix, m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string {
	if strings.Trim(m.prefix, " /") == "" {
		return "/"
	}
	return str.MustPrefix(m.prefix)
}

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
