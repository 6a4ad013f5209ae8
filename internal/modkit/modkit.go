// Package modkit holds the wiring shared by API modules
package modkit

import (
	"ticketdesk/internal/modkit/module"
	"ticketdesk/internal/modkit/repokit"
	"ticketdesk/internal/platform/config"
	"ticketdesk/internal/platform/logger"
)

// Module is what the API composes: tickets, comments and meta each implement it
type Module = module.Module

// Deps are handed to every module constructor
// a zero Deps is usable in tests; PG may be nil for modules that never query
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
