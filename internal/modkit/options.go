package modkit

import (
	"net/http"

	phttp "ticketdesk/internal/platform/net/http"
)

// Option adjusts how a module is built
type Option func(*Built)

// Built is the resolved option set a module constructor reads
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
	// Routes runs after the module's own routes are registered
	Routes func(phttp.Router)
}

// Build resolves opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		if o != nil {
			o(&b)
		}
	}
	if b.Routes == nil {
		b.Routes = func(phttp.Router) {}
	}
	return b
}

func WithName(name string) Option { return func(b *Built) { b.Name = name } }

func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends per-module middleware, outermost first
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports published by another module
// the receiving module type-asserts Built.Ports to its own Ports struct
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRoutes adds routes next to the module's own, e.g. a debug endpoint
func WithRoutes(fn func(phttp.Router)) Option {
	return func(b *Built) {
		prev := b.Routes
		b.Routes = func(r phttp.Router) {
			if prev != nil {
				prev(r)
			}
			fn(r)
		}
	}
}
