package middleware_test

import (
	"compress/flate"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"ticketdesk/internal/platform/net/middleware"
)

const desk = "http://localhost:5173"

func corsRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS([]string{desk}))
	r.Get("/tickets", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Patch("/tickets/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/tickets/t-1", nil)
	req.Header.Set("Origin", desk)
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	corsRouter().ServeHTTP(rec, req)

	assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rec.Code)
	assert.Equal(t, desk, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPatch, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_AllowList(t *testing.T) {
	for origin, allow := range map[string]string{desk: desk, "https://evil.example": "", "": ""} {
		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		corsRouter().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, origin)
		assert.Equal(t, allow, rec.Header().Get("Access-Control-Allow-Origin"), origin)
	}
}

func TestCompress(t *testing.T) {
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":"` + strings.Repeat("ticket ", 1000) + `"}`))
	}))
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestStripSlashesAndTimeout(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes(), middleware.Timeout(20*time.Millisecond))
	r.Get("/tickets", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/slow", func(w http.ResponseWriter, req *http.Request) { <-req.Context().Done() })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tickets/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestRealIP(t *testing.T) {
	var got string
	h := middleware.RealIP()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) { got = r.RemoteAddr }))
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.9", got)
}
