// Package module wires ticket comments into the API using modkit
package module

import (
	"net/http"

	modkit "ticketdesk/internal/modkit"
	"ticketdesk/internal/modkit/httpkit"
	str "ticketdesk/internal/platform/strings"

	chttp "ticketdesk/internal/services/api/comments/http"
	crepo "ticketdesk/internal/services/api/comments/repo"
	csvc "ticketdesk/internal/services/api/comments/service"
	tdomain "ticketdesk/internal/services/api/tickets/domain"
)

// Module implements the comments API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws []func(http.Handler) http.Handler

	register func(httpkit.Router)

	svc csvc.Service
}

// Ports declares what this module needs injected
type Ports struct {
	Tickets tdomain.Lookup
}

// New constructs the comments module; it needs the tickets Lookup port
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("comments"),
		modkit.WithPrefix("/tickets/{id}/comments"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Tickets == nil {
		panic("comments module requires the tickets Lookup port")
	}

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    csvc.New(deps.PG, crepo.NewPG(), injected.Tickets),
	}

	extra := b.Routes
	m.register = func(r httpkit.Router) {
		chttp.Register(r, m.svc)
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
func (m *Module) Name() string { return str.MustString(m.name, "comments") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns nil; comments offers nothing to other modules
func (m *Module) Ports() any { return nil }
