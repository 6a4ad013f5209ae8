// Package migrate applies the embedded postgres schema with goose
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"ticketdesk/internal/platform/logger"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const dir = "migrations"

var setup sync.Once

// configure points goose at the embedded files and routes its output through zerolog
func configure() error {
	var err error
	setup.Do(func() {
		goose.SetBaseFS(embedMigrations)
		goose.SetLogger(gooseLogger{log: logger.Named("migrate")})
		err = goose.SetDialect("postgres")
	})
	if err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// Up applies every pending migration
func Up(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration
func Down(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Reset rolls back every migration
func Reset(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}
	if err := goose.ResetContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to reset migrations: %w", err)
	}
	return nil
}

// Status returns the current schema version (0 when nothing is applied)
func Status(ctx context.Context, db *sql.DB) (int64, error) {
	if err := configure(); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}
	return v, nil
}

// Latest returns the highest version shipped in the embedded migrations
func Latest() (int64, error) {
	if err := configure(); err != nil {
		return 0, err
	}
	ms, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return 0, err
	}
	last, err := ms.Last()
	if err != nil {
		return 0, err
	}
	return last.Version, nil
}

type gooseLogger struct{ log *logger.Logger }

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
