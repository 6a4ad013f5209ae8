package module

import "ticketdesk/internal/services/api/tickets/domain"

// Ports are what the tickets module offers other modules
type Ports struct {
	Lookup domain.Lookup
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
