// Package http provides http transport for tickets
package http

import (
	stdhttp "net/http"

	"ticketdesk/internal/modkit/httpkit"
	"ticketdesk/internal/services/api/tickets/domain"
)

// Register mounts ticket endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.GetJSON(r, "/", h.list)
	httpkit.PostJSON(r, "/", h.create)
	httpkit.GetJSON(r, "/{id}", h.get)
	httpkit.PatchJSON(r, "/{id}", h.update)
	httpkit.DeleteJSON(r, "/{id}", h.delete)
}

type handlers struct{ svc domain.ServicePort }

// @Summary List tickets
// @Tags tickets
// @Produce json
// @Param q query string false "Case-insensitive search in title and description"
// @Param status query string false "OPEN, IN_PROGRESS or RESOLVED"
// @Param priority query string false "LOW, MEDIUM or HIGH"
// @Param sort query string false "createdAt_desc (default) or createdAt_asc"
// @Param page query int false "1-based page"
// @Param limit query int false "1 to 100, default 20"
// @Success 200 {object} domain.Page
// @Router /tickets [get]
func (h *handlers) list(r *stdhttp.Request, in domain.ListTicketsRequest) (any, error) {
	return h.svc.List(r.Context(), in.Filter())
}

// @Summary Get a ticket
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} domain.Ticket
// @Router /tickets/{id} [get]
func (h *handlers) get(r *stdhttp.Request, in domain.TicketRequest) (any, error) {
	return h.svc.Get(r.Context(), in.Params.ID)
}

// @Summary Create a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param payload body domain.CreateBody true "Ticket"
// @Success 201 {object} domain.Ticket
// @Router /tickets [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateTicketRequest) (any, error) {
	t, err := h.svc.Create(r.Context(), in.Body)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(t), nil
}

// @Summary Update a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param payload body domain.UpdateBody true "Fields to change"
// @Success 200 {object} domain.Ticket
// @Router /tickets/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateTicketRequest) (any, error) {
	return h.svc.Update(r.Context(), in.Params.ID, in.Patch())
}

// @Summary Soft delete a ticket
// @Tags tickets
// @Param id path string true "Ticket ID"
// @Success 204
// @Router /tickets/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request, in domain.TicketRequest) (any, error) {
	if err := h.svc.Delete(r.Context(), in.Params.ID); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
