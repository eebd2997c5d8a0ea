package pkgdb

import (
	"sync"

	"github.com/agentstation/pkgdb/pkg/packages"
)

// Hook function types for database events
type (
	// PackageRegisteredHook is called after a package is added and saved
	PackageRegisteredHook func(pkg packages.Package)

	// PackageUnregisteredHook is called after a package is removed and saved
	PackageUnregisteredHook func(pkg packages.Package)
)

// hooks manages event callbacks for database changes
type hooks struct {
	mu                    sync.RWMutex
	onPackageRegistered   []PackageRegisteredHook
	onPackageUnregistered []PackageUnregisteredHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnPackageRegistered registers a callback for registered packages
func (h *hooks) OnPackageRegistered(fn PackageRegisteredHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPackageRegistered = append(h.onPackageRegistered, fn)
}

// OnPackageUnregistered registers a callback for unregistered packages
func (h *hooks) OnPackageUnregistered(fn PackageUnregisteredHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPackageUnregistered = append(h.onPackageUnregistered, fn)
}

func (h *hooks) triggerRegistered(pkg packages.Package) {
	h.mu.RLock()
	fns := h.onPackageRegistered
	h.mu.RUnlock()

	for _, hook := range fns {
		hook(pkg)
	}
}

func (h *hooks) triggerUnregistered(pkg packages.Package) {
	h.mu.RLock()
	fns := h.onPackageUnregistered
	h.mu.RUnlock()

	for _, hook := range fns {
		hook(pkg)
	}
}
