// Package repo provides postgres access for tickets
// every read and every write is scoped to live rows (deleted_at is null)
package repo

import (
	"context"
	"fmt"
	"strings"

	"ticketdesk/internal/modkit/repokit"
	"ticketdesk/internal/platform/store"
	"ticketdesk/internal/services/api/tickets/domain"
)

// Repo defines the repository contract for tickets
type Repo interface {
	Count(ctx context.Context, f domain.ListFilter) (int, error)
	Page(ctx context.Context, f domain.ListFilter) ([]domain.Ticket, error)
	Get(ctx context.Context, id string) (domain.Ticket, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, t domain.NewTicket) (domain.Ticket, error)
	Update(ctx context.Context, id string, p domain.Patch) (domain.Ticket, error)
	SoftDelete(ctx context.Context, id string) error
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const columns = `id::text, title, description, status::text, priority::text, created_at, updated_at, deleted_at`

func scanTicket(r store.Row) (domain.Ticket, error) {
	var t domain.Ticket
	var status, priority string
	if err := r.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&status,
		&priority,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
	); err != nil {
		return domain.Ticket{}, err
	}
	t.Status = domain.Status(status)
	t.Priority = domain.Priority(priority)
	return t, nil
}

func (r *queries) Count(ctx context.Context, f domain.ListFilter) (int, error) {
	where, args := filterClause(f)
	return store.Scalar[int](ctx, r.q, `select count(*)::int from tickets where `+where, args...)
}

func (r *queries) Page(ctx context.Context, f domain.ListFilter) ([]domain.Ticket, error) {
	where, args := filterClause(f)
	dir := "desc"
	if f.Sort == domain.SortOldest {
		dir = "asc"
	}
	p := repokit.Paging{Page: f.Page, Limit: f.Limit}
	args = append(args, p.Limit, p.Offset())
	sql := fmt.Sprintf(`
select %s
from tickets
where %s
order by created_at %s, id %s
limit $%d offset $%d
`, columns, where, dir, dir, len(args)-1, len(args))
	return store.Many(ctx, r.q, scanTicket, sql, args...)
}

func (r *queries) Get(ctx context.Context, id string) (domain.Ticket, error) {
	return store.One(ctx, r.q, scanTicket,
		`select `+columns+` from tickets where id = $1 and deleted_at is null`, id)
}

func (r *queries) Exists(ctx context.Context, id string) (bool, error) {
	return store.Scalar[bool](ctx, r.q,
		`select exists(select 1 from tickets where id = $1 and deleted_at is null)`, id)
}

func (r *queries) Insert(ctx context.Context, t domain.NewTicket) (domain.Ticket, error) {
	const sql = `
insert into tickets (id, title, description, status, priority)
values ($1, $2, $3, $4::ticket_status, $5::ticket_priority)
returning ` + columns
	return store.One(ctx, r.q, scanTicket, sql,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority))
}

// Update applies the supplied fields and bumps updated_at
// a missing or deleted ticket comes back as perr.ErrNotFound
func (r *queries) Update(ctx context.Context, id string, p domain.Patch) (domain.Ticket, error) {
	const sql = `
update tickets set
  title       = coalesce($2, title),
  description = coalesce($3, description),
  status      = coalesce($4::ticket_status, status),
  priority    = coalesce($5::ticket_priority, priority),
  updated_at  = now()
where id = $1 and deleted_at is null
returning ` + columns
	return store.One(ctx, r.q, scanTicket, sql,
		id, p.Title, p.Description, textPtr(p.Status), textPtr(p.Priority))
}

// SoftDelete stamps deleted_at; a ticket can only be deleted once
func (r *queries) SoftDelete(ctx context.Context, id string) error {
	return store.ExecOne(ctx, r.q,
		`update tickets set deleted_at = now(), updated_at = now() where id = $1 and deleted_at is null`, id)
}

// filterClause builds the where clause and its positional args
func filterClause(f domain.ListFilter) (string, []any) {
	conds := []string{"deleted_at is null"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		conds = append(conds, "status = "+arg(string(f.Status))+"::ticket_status")
	}
	if f.Priority != "" {
		conds = append(conds, "priority = "+arg(string(f.Priority))+"::ticket_priority")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + EscapeLike(s) + "%")
		conds = append(conds, "(title ilike "+p+` escape '\' or description ilike `+p+` escape '\')`)
	}
	return strings.Join(conds, " and "), args
}

// EscapeLike escapes the LIKE wildcards so s matches literally
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func textPtr[T ~string](p *T) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}
