// Package repo provides postgres access for comments
// reads join the parent ticket so comments of a deleted ticket never show
package repo

import (
	"context"

	"ticketdesk/internal/modkit/repokit"
	"ticketdesk/internal/platform/store"
	"ticketdesk/internal/services/api/comments/domain"
)

// Repo defines the repository contract for comments
type Repo interface {
	Count(ctx context.Context, ticketID string) (int, error)
	Page(ctx context.Context, ticketID string, p repokit.Paging) ([]domain.Comment, error)
	Insert(ctx context.Context, c domain.NewComment) (domain.Comment, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func scanComment(r store.Row) (domain.Comment, error) {
	var c domain.Comment
	err := r.Scan(&c.ID, &c.TicketID, &c.AuthorName, &c.Message, &c.CreatedAt)
	return c, err
}

func (r *queries) Count(ctx context.Context, ticketID string) (int, error) {
	const sql = `
select count(*)::int
from comments c
join tickets t on t.id = c.ticket_id and t.deleted_at is null
where c.ticket_id = $1
`
	return store.Scalar[int](ctx, r.q, sql, ticketID)
}

func (r *queries) Page(ctx context.Context, ticketID string, p repokit.Paging) ([]domain.Comment, error) {
	const sql = `
select c.id::text, c.ticket_id::text, c.author_name, c.message, c.created_at
from comments c
join tickets t on t.id = c.ticket_id and t.deleted_at is null
where c.ticket_id = $1
order by c.created_at asc, c.id asc
limit $2 offset $3
`
	return store.Many(ctx, r.q, scanComment, sql, ticketID, p.Limit, p.Offset())
}

// Insert adds a comment to a live ticket
// a missing or deleted ticket inserts nothing and comes back as perr.ErrNotFound
func (r *queries) Insert(ctx context.Context, c domain.NewComment) (domain.Comment, error) {
	const sql = `
insert into comments (id, ticket_id, author_name, message)
select $1::uuid, t.id, $3::text, $4::text
from tickets t
where t.id = $2 and t.deleted_at is null
returning id::text, ticket_id::text, author_name, message, created_at
`
	return store.One(ctx, r.q, scanComment, sql, c.ID, c.TicketID, c.AuthorName, c.Message)
}
