// Package service contains comment workflows
package service

import (
	"context"
	"errors"

	"ticketdesk/internal/modkit/repokit"
	perr "ticketdesk/internal/platform/errors"
	"ticketdesk/internal/services/api/comments/domain"
	"ticketdesk/internal/services/api/comments/repo"
	tdomain "ticketdesk/internal/services/api/tickets/domain"

	"github.com/google/uuid"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	tickets tdomain.Lookup
	newID   func() string
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], tickets tdomain.Lookup) *Svc {
	if db == nil {
		panic("comments.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("comments.Service requires a non nil Repo binder")
	}
	if tickets == nil {
		panic("comments.Service requires a non nil tickets Lookup")
	}
	return &Svc{
		Repo:    binder.Bind(db),
		binder:  binder,
		db:      db,
		tickets: tickets,
		newID:   uuid.NewString,
	}
}

// List returns a page of a live ticket's comments, oldest first
func (s *Svc) List(ctx context.Context, ticketID string, p repokit.Paging) (domain.Page, error) {
	if err := s.tickets.Exists(ctx, ticketID); err != nil {
		return domain.Page{}, err
	}
	var (
		items []domain.Comment
		total int
	)
	err := repokit.ReadTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		var err error
		if total, err = r.Count(ctx, ticketID); err != nil {
			return err
		}
		items, err = r.Page(ctx, ticketID, p)
		return err
	})
	if err != nil {
		return domain.Page{}, perr.WithOp(perr.FromPostgres(err, "list comments"), "comments.List")
	}
	return repokit.NewPaged(items, total, p), nil
}

// Add appends a comment to a live ticket
func (s *Svc) Add(ctx context.Context, ticketID string, in domain.CreateBody) (domain.Comment, error) {
	if err := s.tickets.Exists(ctx, ticketID); err != nil {
		return domain.Comment{}, err
	}
	c, err := s.Repo.Insert(ctx, domain.NewComment{
		ID:         s.newID(),
		TicketID:   ticketID,
		AuthorName: in.AuthorName,
		Message:    in.Message,
	})
	if err != nil {
		// ticket row gone between the check and the insert
		if code, _ := perr.DBErrorCode(err); code == perr.ErrorCodeNotFound || errors.Is(err, perr.ErrNotFound) {
			return domain.Comment{}, tdomain.ErrNotFound()
		}
		return domain.Comment{}, perr.WithOp(perr.FromPostgres(err, "add comment"), "comments.Add")
	}
	return c, nil
}
