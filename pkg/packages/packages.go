package packages

import (
	"sync"

	"github.com/agentstation/pkgdb/pkg/errors"
)

// Packages is an ordered set of package records keyed by name.
// Insertion order is preserved and removal keeps the relative order of
// the remaining records.
type Packages struct {
	mu       sync.RWMutex
	packages []Package
}

// Option defines a function that configures a Packages instance.
type Option func(*Packages)

// WithCapacity sets the initial capacity of the backing slice.
func WithCapacity(capacity int) Option {
	return func(p *Packages) {
		if capacity > 0 {
			p.packages = make([]Package, 0, capacity)
		}
	}
}

// WithPackages seeds the store with records in the order given. The
// records are copied without validation; persistence validates on load.
func WithPackages(pkgs ...Package) Option {
	return func(p *Packages) {
		p.packages = append(make([]Package, 0, len(pkgs)), pkgs...)
	}
}

// New creates an empty store with optional configuration.
func New(opts ...Option) *Packages {
	p := &Packages{
		packages: []Package{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Find returns the first record whose name matches exactly.
func (p *Packages) Find(name string) (Package, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if i := p.index(name); i >= 0 {
		return p.packages[i], true
	}
	return Package{}, false
}

// Exists reports whether a record named name is present.
func (p *Packages) Exists(name string) bool {
	_, ok := p.Find(name)
	return ok
}

// Add appends pkg to the end of the store. It fails with a
// ValidationError for incomplete records and an AlreadyExistsError when
// the name is taken.
func (p *Packages) Add(pkg Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index(pkg.Name) >= 0 {
		return &errors.AlreadyExistsError{Resource: "package", ID: pkg.Name}
	}

	p.packages = append(p.packages, pkg)
	return nil
}

// Remove drops the first record named name and returns it.
func (p *Packages) Remove(name string) (Package, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.index(name)
	if i < 0 {
		return Package{}, &errors.NotFoundError{Resource: "package", ID: name}
	}

	removed := p.packages[i]
	rest := make([]Package, 0, len(p.packages)-1)
	rest = append(rest, p.packages[:i]...)
	rest = append(rest, p.packages[i+1:]...)
	p.packages = rest

	return removed, nil
}

// List returns a copy of all records in stored order.
func (p *Packages) List() []Package {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Package, len(p.packages))
	copy(out, p.packages)
	return out
}

// Names returns the record names in stored order.
func (p *Packages) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.packages))
	for _, pkg := range p.packages {
		names = append(names, pkg.Name)
	}
	return names
}

// Len returns the number of records.
func (p *Packages) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.packages)
}

// index is a linear scan; callers hold the lock.
func (p *Packages) index(name string) int {
	for i := range p.packages {
		if p.packages[i].Name == name {
			return i
		}
	}
	return -1
}
