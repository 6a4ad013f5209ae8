package admin

import (
	"context"
	"database/sql"
	"fmt"

	"ticketdesk/internal/platform/store"
	"ticketdesk/internal/platform/store/migrate"

	"github.com/spf13/cobra"
)

func newMigrateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	step := func(use, short string, run func(context.Context, *sql.DB) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.withSQL(cmd.Context(), func(db *sql.DB) error {
					if err := run(cmd.Context(), db); err != nil {
						return err
					}
					return printStatus(cmd, db)
				})
			},
		}
	}

	cmd.AddCommand(
		step("up", "Apply every pending migration", migrate.Up),
		step("down", "Roll back the most recent migration", migrate.Down),
		step("reset", "Roll back every migration", migrate.Reset),
		&cobra.Command{
			Use:   "status",
			Short: "Show the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.withSQL(cmd.Context(), func(db *sql.DB) error { return printStatus(cmd, db) })
			},
		},
	)
	return cmd
}

func (a *App) withSQL(ctx context.Context, fn func(*sql.DB) error) error {
	return a.withStore(ctx, func(st *store.Store) error {
		db, err := st.SQLDB()
		if err != nil {
			return err
		}
		return fn(db)
	})
}

func printStatus(cmd *cobra.Command, db *sql.DB) error {
	current, err := migrate.Status(cmd.Context(), db)
	if err != nil {
		return err
	}
	latest, err := migrate.Latest()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d of %d\n", current, latest)
	return err
}
