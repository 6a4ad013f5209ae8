package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter wraps any chi.Router, root mux or Route/Group child
type chiRouter struct{ r chi.Router }

// AdaptChi exposes m as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) method(verb, p string, h Handler) { c.r.Method(verb, p, http.HandlerFunc(h)) }

func (c chiRouter) Get(p string, h Handler)    { c.method(http.MethodGet, p, h) }
func (c chiRouter) Post(p string, h Handler)   { c.method(http.MethodPost, p, h) }
func (c chiRouter) Patch(p string, h Handler)  { c.method(http.MethodPatch, p, h) }
func (c chiRouter) Delete(p string, h Handler) { c.method(http.MethodDelete, p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }
