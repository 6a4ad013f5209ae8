// Package domain holds comment types and request contracts
package domain

import (
	"context"
	"time"

	"ticketdesk/internal/core/normalize"
	"ticketdesk/internal/modkit/repokit"
	tdomain "ticketdesk/internal/services/api/tickets/domain"
)

// Comment is a note left on a ticket; comments are append only
type Comment struct {
	ID         string    `json:"id"         example:"0b5c3f2e-9d1a-4a57-b8a0-3c0d7e1f2a44"`
	TicketID   string    `json:"ticketId"   example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	AuthorName string    `json:"authorName" example:"Support Agent"`
	Message    string    `json:"message"    example:"Can you confirm whether you use 2FA?"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Page is one page of comments
type Page = repokit.Paged[Comment]

// NewComment is a validated comment ready to insert
type NewComment struct {
	ID         string
	TicketID   string
	AuthorName string
	Message    string
}

// ListCommentsRequest is GET /tickets/{id}/comments
type ListCommentsRequest struct {
	Params tdomain.IDParams  `json:"params"`
	Query  tdomain.PageQuery `json:"query"`
}

// Normalize applies the paging defaults
func (r *ListCommentsRequest) Normalize() { r.Query.Normalize() }

// Paging returns the normalized page request
func (r ListCommentsRequest) Paging() repokit.Paging {
	return repokit.Paging{Page: *r.Query.Page, Limit: *r.Query.Limit}
}

// CreateBody is the payload of POST /tickets/{id}/comments
type CreateBody struct {
	AuthorName string `json:"authorName" validate:"min=1,max=100" example:"Support Agent"`
	Message    string `json:"message"    validate:"min=1,max=500" example:"We are looking into it."`
}

// AddCommentRequest is POST /tickets/{id}/comments
type AddCommentRequest struct {
	Params tdomain.IDParams `json:"params"`
	Body   CreateBody       `json:"body"`
}

// Normalize cleans the text fields
func (r *AddCommentRequest) Normalize() {
	r.Body.AuthorName = normalize.Text(r.Body.AuthorName)
	r.Body.Message = normalize.Text(r.Body.Message)
}

// ServicePort is the interface implemented by the comment service
type ServicePort interface {
	List(ctx context.Context, ticketID string, p repokit.Paging) (Page, error)
	Add(ctx context.Context, ticketID string, in CreateBody) (Comment, error)
}
