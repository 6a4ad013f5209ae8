package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	phttp "ticketdesk/internal/platform/net/http"
)

func stamp(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Mw", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestMountUnder_ScopesModuleMiddleware(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	MountUnder(r, "/tickets", []func(http.Handler) http.Handler{stamp("auth"), stamp("audit")}, func(sub Router) {
		sub.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})
	MountUnder(r, "/meta", nil, func(sub Router) {
		sub.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tickets", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"auth", "audit"}, rec.Header().Values("X-Mw"))

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Values("X-Mw"))
}

func TestMountUnder_RootPrefixGroupsOnParent(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	MountUnder(r, "/", []func(http.Handler) http.Handler{stamp("meta")}, func(sub Router) {
		sub.Get("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})
	r.Get("/tickets", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"meta"}, rec.Header().Values("X-Mw"))

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tickets", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Values("X-Mw"))
}
