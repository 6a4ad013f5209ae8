// Package service contains ticket workflows
package service

import (
	"context"
	"errors"

	"ticketdesk/internal/modkit/repokit"
	perr "ticketdesk/internal/platform/errors"
	"ticketdesk/internal/services/api/tickets/domain"
	"ticketdesk/internal/services/api/tickets/repo"

	"github.com/google/uuid"
)

// Service is the public service port
type Service interface {
	domain.ServicePort
	domain.Lookup
}

// Svc implements the service port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	newID  func() string
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("tickets.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("tickets.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		newID:  uuid.NewString,
	}
}

// List returns one page of live tickets and the total they were cut from
// count and page read the same snapshot
func (s *Svc) List(ctx context.Context, f domain.ListFilter) (domain.Page, error) {
	var (
		items []domain.Ticket
		total int
	)
	err := repokit.ReadTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		var err error
		if total, err = r.Count(ctx, f); err != nil {
			return err
		}
		items, err = r.Page(ctx, f)
		return err
	})
	if err != nil {
		return domain.Page{}, storeErr(err, "list tickets", "tickets.List")
	}
	return repokit.NewPaged(items, total, repokit.Paging{Page: f.Page, Limit: f.Limit}), nil
}

// Get returns a live ticket
func (s *Svc) Get(ctx context.Context, id string) (domain.Ticket, error) {
	t, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Ticket{}, storeErr(err, "load ticket", "tickets.Get")
	}
	return t, nil
}

// Exists reports a NOT_FOUND error unless the ticket is live
func (s *Svc) Exists(ctx context.Context, id string) error {
	ok, err := s.Repo.Exists(ctx, id)
	if err != nil {
		return storeErr(err, "check ticket", "tickets.Exists")
	}
	if !ok {
		return domain.ErrNotFound()
	}
	return nil
}

// Create stores a new ticket; every ticket starts OPEN
func (s *Svc) Create(ctx context.Context, in domain.CreateBody) (domain.Ticket, error) {
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	t, err := s.Repo.Insert(ctx, domain.NewTicket{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusOpen,
		Priority:    priority,
	})
	if err != nil {
		return domain.Ticket{}, storeErr(err, "create ticket", "tickets.Create")
	}
	return t, nil
}

// Update changes only the supplied fields of a live ticket
func (s *Svc) Update(ctx context.Context, id string, p domain.Patch) (domain.Ticket, error) {
	if err := s.Exists(ctx, id); err != nil {
		return domain.Ticket{}, err
	}
	t, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		return domain.Ticket{}, storeErr(err, "update ticket", "tickets.Update")
	}
	return t, nil
}

// Delete soft deletes a live ticket
func (s *Svc) Delete(ctx context.Context, id string) error {
	if err := s.Exists(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return storeErr(err, "delete ticket", "tickets.Delete")
	}
	return nil
}

// storeErr maps a missing row to the ticket not found error and wraps the rest
func storeErr(err error, msg, op string) error {
	if errors.Is(err, perr.ErrNotFound) {
		return domain.ErrNotFound()
	}
	return perr.WithOp(perr.FromPostgres(err, msg), op)
}
