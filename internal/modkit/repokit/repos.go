// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"context"

	"ticketdesk/internal/platform/store"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)

// Binder hands out a repo bound to q, the pool or an open transaction
type Binder[T any] interface {
	Bind(q Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// ReadTx runs fn inside a read only snapshot when tx supports one, a plain tx otherwise
// use it when several reads must agree (a page and its total)
func ReadTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	if rt, ok := tx.(store.ReadTxRunner); ok {
		return rt.ReadTx(ctx, fn)
	}
	return tx.Tx(ctx, fn)
}
