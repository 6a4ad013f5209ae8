package domain

import (
	"context"

	"ticketdesk/internal/modkit/repokit"
	perr "ticketdesk/internal/platform/errors"
)

// NotFoundMessage is the message of every missing ticket error
const NotFoundMessage = "Ticket not found"

// ErrNotFound returns the error for a ticket that is missing or deleted
func ErrNotFound() error { return perr.New(perr.ErrorCodeNotFound, NotFoundMessage) }

// Page is one page of tickets
type Page = repokit.Paged[Ticket]

// ServicePort is the interface implemented by the ticket service
type ServicePort interface {
	List(ctx context.Context, f ListFilter) (Page, error)
	Get(ctx context.Context, id string) (Ticket, error)
	Create(ctx context.Context, in CreateBody) (Ticket, error)
	Update(ctx context.Context, id string, p Patch) (Ticket, error)
	Delete(ctx context.Context, id string) error
}

// Lookup lets other modules check that a ticket is live
// Exists returns a NOT_FOUND error for missing or deleted tickets
type Lookup interface {
	Exists(ctx context.Context, id string) error
}
