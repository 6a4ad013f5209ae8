// Package domain holds ticket types independent of transport or storage
package domain

import "time"

// Status is where a ticket is in its lifecycle
type Status string

const (
	// StatusOpen is every new ticket
	StatusOpen Status = "OPEN"

	// StatusInProgress means someone is working on it
	StatusInProgress Status = "IN_PROGRESS"

	// StatusResolved means the work is done
	StatusResolved Status = "RESOLVED"
)

// Priority orders tickets by urgency
type Priority string

const (
	// PriorityLow can wait
	PriorityLow Priority = "LOW"

	// PriorityMedium is the default
	PriorityMedium Priority = "MEDIUM"

	// PriorityHigh needs attention first
	PriorityHigh Priority = "HIGH"
)

// Ticket is a support request
// DeletedAt is always null for tickets a client can see
type Ticket struct {
	ID          string     `json:"id"          example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	Title       string     `json:"title"       example:"Cannot log in to dashboard"`
	Description string     `json:"description" example:"The page refreshes and I stay on the login screen."`
	Status      Status     `json:"status"      example:"OPEN"`
	Priority    Priority   `json:"priority"    example:"HIGH"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// Sort is the list order
type Sort string

const (
	// SortNewest lists the most recent tickets first
	SortNewest Sort = "createdAt_desc"

	// SortOldest lists the oldest tickets first
	SortOldest Sort = "createdAt_asc"
)

// ListFilter is what the repository needs to select one page of tickets
type ListFilter struct {
	Search   string
	Status   Status
	Priority Priority
	Sort     Sort
	Page     int
	Limit    int
}

// NewTicket is a validated creation
type NewTicket struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Priority    Priority
}

// Patch carries the fields an update supplied; nil means leave as is
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}
