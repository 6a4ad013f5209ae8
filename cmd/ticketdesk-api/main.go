// @title         Ticketdesk API
// @version       0.1.0
// @description   Support tickets and their comments

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"ticketdesk/internal/core/version"
	"ticketdesk/internal/modkit/repokit"
	"ticketdesk/internal/platform/config"
	"ticketdesk/internal/platform/logger"
	phttp "ticketdesk/internal/platform/net/http"
	"ticketdesk/internal/platform/store"
	"ticketdesk/internal/platform/store/migrate"

	"ticketdesk/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// CONFIG_FILE may supply defaults; env always wins
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	l := logger.Get()
	l.Info().Interface("build", version.Info()).Msg("starting")

	st, err := store.Open(ctx, store.ConfigFrom(pgCfg, version.Info().Service), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// refuse to serve when postgres does not answer
	repokit.MustGuard(ctx, st, pgCfg.MayDuration("PING_TIMEOUT", 5*time.Second))

	if pgCfg.MayBool("MIGRATE", false) {
		db, err := st.SQLDB()
		if err != nil {
			l.Fatal().Err(err).Msg("migrations need postgres")
		}
		if err := migrate.Up(ctx, db); err != nil {
			l.Fatal().Err(err).Msg("migrate up failed")
		}
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", false),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// returns once SIGINT/SIGTERM drained in-flight requests
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		return
	}
	l.Info().Msg("bye")
}
