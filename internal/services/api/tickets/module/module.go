// Package module wires tickets into the API using modkit
package module

import (
	"net/http"

	modkit "ticketdesk/internal/modkit"
	"ticketdesk/internal/modkit/httpkit"
	str "ticketdesk/internal/platform/strings"

	thttp "ticketdesk/internal/services/api/tickets/http"
	trepo "ticketdesk/internal/services/api/tickets/repo"
	tsvc "ticketdesk/internal/services/api/tickets/service"
)

// Module implements the tickets API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	register func(httpkit.Router)

	svc tsvc.Service
}

// New constructs the tickets module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("tickets"),
		modkit.WithPrefix("/tickets"),
	}, opts...)...)

	svc := tsvc.New(deps.PG, trepo.NewPG())

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
		ports:  Ports{Lookup: svc},
	}

	extra := b.Routes
	m.register = func(r httpkit.Router) {
		thttp.Register(r, m.svc)
		extra(r)
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.deps.Log.Debug().Str("module", m.Name()).Str("prefix", m.Prefix()).Msg("mounting module")
	httpkit.MountUnder(r, m.Prefix(), m.mws, func(rr httpkit.Router) {
		m.register(rr)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "tickets") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
