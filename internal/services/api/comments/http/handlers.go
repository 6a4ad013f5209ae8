// Package http provides http transport for ticket comments
package http

import (
	stdhttp "net/http"

	"ticketdesk/internal/modkit/httpkit"
	"ticketdesk/internal/services/api/comments/domain"
)

// Register mounts comment endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.GetJSON(r, "/", h.list)
	httpkit.PostJSON(r, "/", h.add)
}

type handlers struct{ svc domain.ServicePort }

// @Summary List comments on a ticket
// @Tags comments
// @Produce json
// @Param id path string true "Ticket ID"
// @Param page query int false "1-based page"
// @Param limit query int false "1 to 100, default 20"
// @Success 200 {object} domain.Page
// @Router /tickets/{id}/comments [get]
func (h *handlers) list(r *stdhttp.Request, in domain.ListCommentsRequest) (any, error) {
	return h.svc.List(r.Context(), in.Params.ID, in.Paging())
}

// @Summary Add a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param payload body domain.CreateBody true "Comment"
// @Success 201 {object} domain.Comment
// @Router /tickets/{id}/comments [post]
func (h *handlers) add(r *stdhttp.Request, in domain.AddCommentRequest) (any, error) {
	c, err := h.svc.Add(r.Context(), in.Params.ID, in.Body)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(c), nil
}
