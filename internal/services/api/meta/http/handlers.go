// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"ticketdesk/internal/core/version"
	"ticketdesk/internal/modkit/httpkit"
	"ticketdesk/internal/platform/logger"
	"ticketdesk/internal/platform/store"
)

// Deps are the handler dependencies
// a nil PG makes /ready report the pg check as skipped and the service as not ready
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	PG           store.Pinger
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status  string       `json:"status"  example:"ok"` // ok fail
	Service string       `json:"service" example:"ticketdesk-api"`
	Uptime  int64        `json:"uptime"  example:"300"`
	Checks  []ReadyCheck `json:"checks"`
	Now     string       `json:"now"     example:"2026-01-02T13:05:00Z"`
}

// @Summary Liveness probe
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{Status: "ok"}, nil
}

// @Summary Readiness probe with a postgres ping
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Success 503 {object} ReadyResponse
// @Router /ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	pg := ReadyCheck{Name: "pg", Status: "skipped"}
	if h.deps.PG != nil {
		pg.Status = "ok"
		if err := h.deps.PG.Ping(ctx); err != nil {
			// probes get the verdict, the log gets the cause
			logger.C(r.Context()).Warn().Err(err).Dur("timeout", h.deps.ReadyTimeout).Msg("readiness ping failed")
			pg.Status = "fail"
		}
	}

	resp := ReadyResponse{
		Status:  "ok",
		Service: h.deps.ServiceName,
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
		Checks:  []ReadyCheck{pg},
		Now:     time.Now().UTC().Format(time.RFC3339),
	}
	if pg.Status != "ok" {
		resp.Status = "fail"
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: resp}, nil
	}
	return resp, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}
