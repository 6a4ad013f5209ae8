package admin

import (
	"fmt"

	"ticketdesk/internal/platform/store"
	"ticketdesk/internal/platform/store/migrate"

	crepo "ticketdesk/internal/services/api/comments/repo"
	csvc "ticketdesk/internal/services/api/comments/service"
	trepo "ticketdesk/internal/services/api/tickets/repo"
	tsvc "ticketdesk/internal/services/api/tickets/service"

	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the sample tickets and comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return app.withStore(ctx, func(st *store.Store) error {
				if migrateFirst {
					db, err := st.SQLDB()
					if err != nil {
						return err
					}
					if err := migrate.Up(ctx, db); err != nil {
						return err
					}
				}

				tickets := tsvc.New(st.PG, trepo.NewPG())
				comments := csvc.New(st.PG, crepo.NewPG(), tickets)
				res, err := Seed(ctx, tickets, comments)
				if err != nil {
					return err
				}
				app.Log.Info().Int("tickets", res.Tickets).Int("comments", res.Comments).Msg("seed completed")
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seed completed. Created %d tickets and %d comments.\n", res.Tickets, res.Comments)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before seeding")
	return cmd
}
