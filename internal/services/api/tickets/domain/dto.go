package domain

import (
	"ticketdesk/internal/core/normalize"
	"ticketdesk/internal/platform/net/http/bind"
)

// Defaults applied when the caller leaves paging out
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

func init() {
	if err := bind.RegisterAlias("ticket_id", "uuid", "Invalid ticket ID"); err != nil {
		panic(err)
	}
}

// IDParams is the {id} path segment of a ticket route
type IDParams struct {
	ID string `json:"id" validate:"ticket_id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
}

// PageQuery is page and limit from the query string
type PageQuery struct {
	Page  *int `json:"page"  validate:"min=1"         example:"1"`
	Limit *int `json:"limit" validate:"min=1,max=100" example:"20"`
}

// Normalize fills in the default page and limit
func (q *PageQuery) Normalize() { DefaultPaging(&q.Page, &q.Limit) }

// DefaultPaging points nil page and limit at their defaults
func DefaultPaging(page, limit **int) {
	if *page == nil {
		p := DefaultPage
		*page = &p
	}
	if *limit == nil {
		l := DefaultLimit
		*limit = &l
	}
}

// ListQuery filters and pages the ticket list
type ListQuery struct {
	Q        string   `json:"q"                                                             example:"log in"`
	Status   Status   `json:"status"   validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED" example:"OPEN"`
	Priority Priority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"           example:"HIGH"`
	Sort     Sort     `json:"sort"     validate:"oneof=createdAt_asc createdAt_desc"        example:"createdAt_desc"`
	Page     *int     `json:"page"     validate:"min=1"                                     example:"1"`
	Limit    *int     `json:"limit"    validate:"min=1,max=100"                             example:"20"`
}

// ListTicketsRequest is GET /tickets
type ListTicketsRequest struct {
	Query ListQuery `json:"query"`
}

// Normalize cleans the search text and applies defaults
func (r *ListTicketsRequest) Normalize() {
	r.Query.Q = normalize.Text(r.Query.Q)
	if r.Query.Sort == "" {
		r.Query.Sort = SortNewest
	}
	DefaultPaging(&r.Query.Page, &r.Query.Limit)
}

// Filter turns the normalized query into a repository filter
func (r ListTicketsRequest) Filter() ListFilter {
	return ListFilter{
		Search:   r.Query.Q,
		Status:   r.Query.Status,
		Priority: r.Query.Priority,
		Sort:     r.Query.Sort,
		Page:     *r.Query.Page,
		Limit:    *r.Query.Limit,
	}
}

// TicketRequest is any route addressing a single ticket by id
type TicketRequest struct {
	Params IDParams `json:"params"`
}

// CreateBody is the payload of POST /tickets
// status is not accepted; every ticket starts OPEN
type CreateBody struct {
	Title       string   `json:"title"       validate:"min=5,max=80"              example:"Cannot log in to dashboard"`
	Description string   `json:"description" validate:"min=20,max=2000"           example:"The page refreshes and I stay on the login screen."`
	Priority    Priority `json:"priority"    validate:"oneof=LOW MEDIUM HIGH"     example:"MEDIUM"`
}

// CreateTicketRequest is POST /tickets
type CreateTicketRequest struct {
	Body CreateBody `json:"body"`
}

// Normalize cleans text and defaults the priority
func (r *CreateTicketRequest) Normalize() {
	r.Body.Title = normalize.Text(r.Body.Title)
	r.Body.Description = normalize.Text(r.Body.Description)
	if r.Body.Priority == "" {
		r.Body.Priority = PriorityMedium
	}
}

// UpdateBody is the payload of PATCH /tickets/{id}; every field is optional
type UpdateBody struct {
	Title       *string   `json:"title"       validate:"omitempty,min=5,max=80"`
	Description *string   `json:"description" validate:"omitempty,min=20,max=2000"`
	Status      *Status   `json:"status"      validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED"`
	Priority    *Priority `json:"priority"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// UpdateTicketRequest is PATCH /tickets/{id}
type UpdateTicketRequest struct {
	Params IDParams   `json:"params"`
	Body   UpdateBody `json:"body"`
}

// Normalize cleans the supplied text fields
func (r *UpdateTicketRequest) Normalize() {
	r.Body.Title = normalize.Ptr(r.Body.Title)
	r.Body.Description = normalize.Ptr(r.Body.Description)
}

// Patch returns the fields to change
func (r UpdateTicketRequest) Patch() Patch {
	return Patch{
		Title:       r.Body.Title,
		Description: r.Body.Description,
		Status:      r.Body.Status,
		Priority:    r.Body.Priority,
	}
}
