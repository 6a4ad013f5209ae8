// Package module keeps the set of API modules composed at boot and the ports they publish
package module

import (
	"fmt"
	"sort"
	"sync"

	phttp "ticketdesk/internal/platform/net/http"
)

// Module is a mountable API module
type Module interface {
	MountRoutes(r phttp.Router)
	// Ports exposes what other modules may depend on, or nil
	Ports() any
	Name() string
}

// Registry holds modules in registration order
type Registry struct {
	mu    sync.RWMutex
	mods  []Module
	ports map[string]any
}

func NewRegistry() *Registry { return &Registry{ports: map[string]any{}} }

// Add registers m and its ports under m.Name()
func (r *Registry) Add(m Module) error {
	if m == nil {
		return fmt.Errorf("module: nil module")
	}
	name := m.Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ports[name]; dup {
		return fmt.Errorf("module: %q already registered", name)
	}
	r.mods = append(r.mods, m)
	r.ports[name] = m.Ports()
	return nil
}

// MustAdd is Add for boot code
func (r *Registry) MustAdd(m Module) Module {
	if err := r.Add(m); err != nil {
		panic(err)
	}
	return m
}

// Names returns registered module names sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ports))
	for n := range r.ports {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// MountAll mounts every module on rt in registration order
func (r *Registry) MountAll(rt phttp.Router) {
	r.mu.RLock()
	mods := append([]Module(nil), r.mods...)
	r.mu.RUnlock()
	for _, m := range mods {
		m.MountRoutes(rt)
	}
}

// PortsAs fetches the ports published by name as T
// ok is false when the module is missing or publishes a different type
func PortsAs[T any](r *Registry, name string) (T, bool) {
	r.mu.RLock()
	v, found := r.ports[name]
	r.mu.RUnlock()
	out, ok := v.(T)
	return out, found && ok
}
