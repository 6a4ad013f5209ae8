// Package api provides the HTTP API for the application
package api

import (
	"fmt"

	"ticketdesk/internal/platform/config"
	"ticketdesk/internal/platform/logger"
	phttp "ticketdesk/internal/platform/net/http"
	"ticketdesk/internal/platform/store"

	"ticketdesk/internal/modkit"
	"ticketdesk/internal/modkit/httpkit"
	"ticketdesk/internal/modkit/module"
	"ticketdesk/internal/modkit/repokit"
	"ticketdesk/internal/modkit/swaggerkit"

	commentsmod "ticketdesk/internal/services/api/comments/module"
	metamod "ticketdesk/internal/services/api/meta/module"
	ticketsmod "ticketdesk/internal/services/api/tickets/module"
)

// Options are the API options
// Config is the service-scoped config (CORE_API_*)
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router and returns the module registry
// the common stack goes on the root so CORS preflights and 404s pass through it too
func Mount(r phttp.Router, opt Options) *module.Registry {
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// data modules run every transaction under a statement timeout
	data := deps
	if data.PG != nil {
		data.PG = repokit.WithBeginHooks(data.PG,
			repokit.StatementTimeout(opt.Config.MayDuration("STATEMENT_TIMEOUT", 0)))
	}

	reg := module.NewRegistry()
	reg.MustAdd(metamod.New(deps))

	// tickets first: comments is built from the Lookup port tickets publishes
	tickets := reg.MustAdd(ticketsmod.New(data))
	tp, ok := module.PortsAs[ticketsmod.Ports](reg, tickets.Name())
	if !ok {
		panic(fmt.Sprintf("api: %s ports not registered", tickets.Name()))
	}
	reg.MustAdd(commentsmod.New(data, modkit.WithPorts(commentsmod.Ports{Tickets: tp.Lookup})))

	r.Use(httpkit.CommonStack(httpkit.StackOptionsFrom(opt.Config))...)

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	reg.MountAll(r)
	return reg
}
