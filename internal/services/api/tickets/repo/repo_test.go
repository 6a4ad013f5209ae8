package repo

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	perr "ticketdesk/internal/platform/errors"
	"ticketdesk/internal/platform/store/storetest"
	"ticketdesk/internal/services/api/tickets/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const id = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

func ticketRow(title string) []any {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []any{id, title, "a description that is long enough", "OPEN", "HIGH", now, now, nil}
}

// every statement that touches tickets must stay on live rows
func assertLiveOnly(t *testing.T, db *storetest.DB) {
	t.Helper()
	for _, c := range db.Statements("exec", "query", "queryrow") {
		assert.Contains(t, storetest.Normalize(c.SQL), "deleted_at is null", "statement: %s", c.SQL)
	}
}

func TestFilterClause(t *testing.T) {
	where, args := filterClause(domain.ListFilter{})
	assert.Equal(t, "deleted_at is null", where)
	assert.Empty(t, args)

	where, args = filterClause(domain.ListFilter{
		Search:   " 50%_off\\ ",
		Status:   domain.StatusInProgress,
		Priority: domain.PriorityLow,
	})
	assert.Equal(t,
		`deleted_at is null and status = $1::ticket_status and priority = $2::ticket_priority`+
			` and (title ilike $3 escape '\' or description ilike $3 escape '\')`,
		where)
	assert.Equal(t, []any{"IN_PROGRESS", "LOW", `%50\%\_off\\%`}, args)
}

func TestFilterClause_BlankSearchIgnored(t *testing.T) {
	where, args := filterClause(domain.ListFilter{Search: "   "})
	assert.Equal(t, "deleted_at is null", where)
	assert.Empty(t, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "log in", EscapeLike("log in"))
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, EscapeLike(`c:\tmp`))
}

func TestPage_OrderAndWindow(t *testing.T) {
	ctx := context.Background()
	db := storetest.New(storetest.Result{Rows: [][]any{ticketRow("First ticket"), ticketRow("Second ticket")}})
	r := NewPG().Bind(db)

	items, err := r.Page(ctx, domain.ListFilter{Status: domain.StatusOpen, Sort: domain.SortNewest, Page: 3, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "First ticket", items[0].Title)
	assert.Equal(t, domain.StatusOpen, items[0].Status)
	assert.Equal(t, domain.PriorityHigh, items[0].Priority)
	assert.Nil(t, items[0].DeletedAt)

	call := db.Statements("query")[0]
	sql := storetest.Normalize(call.SQL)
	assert.Contains(t, sql, "order by created_at desc, id desc")
	assert.Contains(t, sql, "limit $2 offset $3")
	assert.Equal(t, []any{"OPEN", 10, 20}, call.Args)
	assertLiveOnly(t, db)
}

func TestPage_OldestFirst(t *testing.T) {
	db := storetest.New()
	items, err := NewPG().Bind(db).Page(context.Background(), domain.ListFilter{Sort: domain.SortOldest, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	call := db.Statements("query")[0]
	assert.Contains(t, storetest.Normalize(call.SQL), "order by created_at asc, id asc")
	assert.Equal(t, []any{20, 0}, call.Args)
}

func TestPage_HugePageIsPastTheEnd(t *testing.T) {
	db := storetest.New()
	items, err := NewPG().Bind(db).Page(context.Background(), domain.ListFilter{Page: 922337203685477580, Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, []any{100, math.MaxInt}, db.Statements("query")[0].Args)
}

func TestCount_UsesSameFilter(t *testing.T) {
	db := storetest.New(storetest.Result{Rows: [][]any{{7}}})
	n, err := NewPG().Bind(db).Count(context.Background(), domain.ListFilter{Search: "login"})
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	call := db.Statements("queryrow")[0]
	assert.True(t, strings.HasPrefix(storetest.Normalize(call.SQL), "select count(*)::int from tickets where"))
	assert.Equal(t, []any{"%login%"}, call.Args)
	assertLiveOnly(t, db)
}

func TestGet(t *testing.T) {
	db := storetest.New(storetest.Result{Rows: [][]any{ticketRow("Cannot log in")}}, storetest.Result{})
	r := NewPG().Bind(db)

	got, err := r.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Cannot log in", got.Title)

	_, err = r.Get(context.Background(), id)
	assert.True(t, errors.Is(err, perr.ErrNotFound))
	assertLiveOnly(t, db)
}

func TestExists(t *testing.T) {
	db := storetest.New(storetest.Result{Rows: [][]any{{true}}}, storetest.Result{Rows: [][]any{{false}}})
	r := NewPG().Bind(db)

	ok, err := r.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, ok)
	assertLiveOnly(t, db)
}

func TestInsert_PassesEveryColumn(t *testing.T) {
	db := storetest.New(storetest.Result{Rows: [][]any{ticketRow("Cannot log in")}})
	_, err := NewPG().Bind(db).Insert(context.Background(), domain.NewTicket{
		ID: id, Title: "Cannot log in", Description: "d", Status: domain.StatusOpen, Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)

	call := db.Statements("query")[0]
	assert.Contains(t, storetest.Normalize(call.SQL), "insert into tickets")
	assert.Equal(t, []any{id, "Cannot log in", "d", "OPEN", "HIGH"}, call.Args)
}

func TestUpdate_GuardedAndPartial(t *testing.T) {
	db := storetest.New(storetest.Result{Rows: [][]any{ticketRow("Renamed ticket")}}, storetest.Result{})
	r := NewPG().Bind(db)

	status := domain.StatusResolved
	got, err := r.Update(context.Background(), id, domain.Patch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Renamed ticket", got.Title)

	call := db.Statements("query")[0]
	sql := storetest.Normalize(call.SQL)
	assert.Contains(t, sql, "updated_at = now()")
	assert.Contains(t, sql, "where id = $1 and deleted_at is null")
	require.Len(t, call.Args, 5)
	assert.Equal(t, id, call.Args[0])
	assert.Nil(t, call.Args[1])
	assert.Nil(t, call.Args[2])
	require.NotNil(t, call.Args[3])
	assert.Equal(t, "RESOLVED", *call.Args[3].(*string))
	assert.Nil(t, call.Args[4])

	// a deleted ticket matches nothing
	_, err = r.Update(context.Background(), id, domain.Patch{Status: &status})
	assert.True(t, errors.Is(err, perr.ErrNotFound))
	assertLiveOnly(t, db)
}

func TestSoftDelete(t *testing.T) {
	db := storetest.New(storetest.Result{Affected: 1}, storetest.Result{Affected: 0})
	r := NewPG().Bind(db)

	require.NoError(t, r.SoftDelete(context.Background(), id))
	assert.True(t, errors.Is(r.SoftDelete(context.Background(), id), perr.ErrNotFound))

	sql := storetest.Normalize(db.Statements("exec")[0].SQL)
	assert.Contains(t, sql, "set deleted_at = now(), updated_at = now()")
	assertLiveOnly(t, db)
}
