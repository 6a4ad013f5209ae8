package http

import "net/http"

// Handler is the handler func shape every route registers
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount routes against
// only the verbs the API serves
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux is the handler to serve; for a subrouter that is the subrouter itself
	Mux() http.Handler
}
