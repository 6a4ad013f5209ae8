package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/platform/net/middleware"
)

func accessLine(t *testing.T, slow time.Duration, route string, h http.HandlerFunc, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID(), middleware.RequestLogger, middleware.AccessLog(slow, &log))
	r.Get(route, h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Request-Id", "rid-7")
	r.ServeHTTP(rec, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), buf.String())
	return rec, line
}

func TestAccessLog_Fields(t *testing.T) {
	rec, line := accessLine(t, 0, "/tickets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"t-1"}`)
	}, "/tickets/t-1")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"id":"t-1"}`, rec.Body.String())

	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "request", line["message"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/tickets/t-1", line["path"])
	assert.Equal(t, "/tickets/{id}", line["route"])
	assert.EqualValues(t, 201, line["status"])
	assert.EqualValues(t, 12, line["bytes"])
	assert.Equal(t, "rid-7", line["request_id"])
	assert.Equal(t, false, line["slow"])
}

func TestAccessLog_ImplicitOK(t *testing.T) {
	_, line := accessLine(t, 0, "/health", func(w http.ResponseWriter, _ *http.Request) {}, "/health")
	assert.EqualValues(t, 200, line["status"])
}

func TestAccessLog_SlowWarns(t *testing.T) {
	_, line := accessLine(t, time.Nanosecond, "/tickets", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Millisecond)
	}, "/tickets")
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, true, line["slow"])
}

func TestAccessLog_ServerErrorWarns(t *testing.T) {
	_, line := accessLine(t, time.Hour, "/tickets", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "/tickets")
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, false, line["slow"])
}
