// Package store is the postgres seam repositories run against
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ticketdesk/internal/platform/logger"

	"github.com/jackc/pgx/v5/stdlib"
)

// Row is a single scanned row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set read front to back
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs statements directly or inside a transaction
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// ReadTxRunner can open a read only snapshot
type ReadTxRunner interface {
	ReadTx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger reports whether a backend answers
type Pinger interface{ Ping(context.Context) error }

// Store holds the open backends; the zero value has none
type Store struct {
	Log logger.Logger

	// PG is nil when no postgres URL was configured
	PG TxRunner
}

// Option adjusts a Store before its backends open
type Option func(*Store)

// WithLogger sets the logger used for connection and query logs
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.Log = log }
}

// Open dials postgres when cfg has a URL, retrying until it answers
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}
	if cfg.URL == "" {
		return s, nil
	}
	p, err := dial(ctx, cfg, s.Log)
	if err != nil {
		return nil, err
	}
	s.PG = p
	return s, nil
}

// Guard pings every open backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
	}
	return nil
}

// Close releases the open backends
func (s *Store) Close(context.Context) error {
	if p, ok := s.PG.(*postgres); ok {
		p.pool.Close()
	}
	return nil
}

// SQLDB exposes the pool as a *sql.DB for migrations
// the handle shares the pool; closing it leaves the Store open
func (s *Store) SQLDB() (*sql.DB, error) {
	if s == nil {
		return nil, errors.New("nil store")
	}
	p, ok := s.PG.(*postgres)
	if !ok || p.pool == nil {
		return nil, errors.New("store: postgres backend not open")
	}
	return stdlib.OpenDBFromPool(p.pool), nil
}
