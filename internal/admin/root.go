// Package admin holds the ticketdesk-admin commands: schema migrations and sample data
package admin

import (
	"context"
	"fmt"
	"io"
	"os"

	"ticketdesk/internal/core/version"
	"ticketdesk/internal/platform/config"
	"ticketdesk/internal/platform/logger"
	"ticketdesk/internal/platform/store"

	"github.com/spf13/cobra"
)

// App carries what every command needs
type App struct {
	Cfg config.Conf
	Log *logger.Logger
	Out io.Writer

	// Open returns a ready store; replaced in tests
	Open func(ctx context.Context) (*store.Store, error)
}

// NewApp builds the production App from the root config
func NewApp(cfg config.Conf) *App {
	log := logger.Named("admin")
	return &App{
		Cfg: cfg,
		Log: log,
		Out: os.Stdout,
		Open: func(ctx context.Context) (*store.Store, error) {
			return store.Open(ctx,
				store.ConfigFrom(cfg.Prefix("SERVICE_PGSQL_"), "ticketdesk-admin"),
				store.WithLogger(*log),
			)
		},
	}
}

// NewRootCmd returns the command tree
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ticketdesk-admin",
		Short:         "Administer the ticketdesk database",
		Version:       version.Info().Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(app.Out)
	root.AddCommand(newMigrateCmd(app), newSeedCmd(app), newVersionCmd(app))
	return root
}

// withStore opens the store for the duration of fn
func (a *App) withStore(ctx context.Context, fn func(*store.Store) error) error {
	st, err := a.Open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			a.Log.Error().Err(err).Msg("failed to close store")
		}
	}()
	return fn(st)
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := version.Info()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n", v.Service, v.Version, v.Commit, v.Date)
			return err
		},
	}
}
