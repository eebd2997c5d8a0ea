// Package pkgdb is the library interface to the package registration
// database: an ordered list of installed packages, each recorded with a
// name, a version and a short description.
//
// Example:
//
//	db, err := pkgdb.New(pkgdb.WithPath("/var/xbps/.xbps-pkgdb.plist"))
//	if err != nil {
//	    return err
//	}
//	db.OnPackageRegistered(func(pkg packages.Package) {
//	    log.Printf("registered %s", pkg)
//	})
//	result, err := db.Register(ctx, packages.Package{Name: "foo", Version: "1.0", Description: "Foo tool"})
package pkgdb

import (
	"context"
	"fmt"

	"github.com/agentstation/pkgdb/internal/ledger"
	"github.com/agentstation/pkgdb/pkg/packages"
)

// RegisterResult describes what Register did.
type RegisterResult = ledger.RegisterResult

// Database operates on one package database file.
type Database interface {
	// Path returns the database file path
	Path() string

	// List returns every registered package in registration order
	List(ctx context.Context) ([]packages.Package, error)

	// Register adds a package, creating the database if it does not exist
	Register(ctx context.Context, pkg packages.Package) (RegisterResult, error)

	// Unregister removes the package named name
	Unregister(ctx context.Context, name, version string) (packages.Package, error)

	// Version returns the registered version of the package named name
	Version(ctx context.Context, name string) (string, error)

	// OnPackageRegistered registers a callback for newly registered packages
	OnPackageRegistered(PackageRegisteredHook)

	// OnPackageUnregistered registers a callback for removed packages
	OnPackageUnregistered(PackageUnregisteredHook)
}

// database is the internal implementation of the Database interface
type database struct {
	ledger *ledger.Ledger
	config *config
	hooks  *hooks
}

// New creates a Database with the given options.
func New(opts ...Option) (Database, error) {
	db := &database{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := db.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	db.ledger = ledger.New(db.config.path, db.config.ledgerOptions()...)
	return db, nil
}

func (d *database) Path() string {
	return d.ledger.Path()
}

func (d *database) List(ctx context.Context) ([]packages.Package, error) {
	return d.ledger.List(ctx)
}

func (d *database) Register(ctx context.Context, pkg packages.Package) (RegisterResult, error) {
	result, err := d.ledger.Register(ctx, pkg)
	if err == nil && !result.AlreadyRegistered {
		d.hooks.triggerRegistered(pkg)
	}
	return result, err
}

func (d *database) Unregister(ctx context.Context, name, version string) (packages.Package, error) {
	removed, err := d.ledger.Unregister(ctx, name, version)
	if err == nil {
		d.hooks.triggerUnregistered(removed)
	}
	return removed, err
}

func (d *database) Version(ctx context.Context, name string) (string, error) {
	return d.ledger.Version(ctx, name)
}

func (d *database) OnPackageRegistered(fn PackageRegisteredHook) {
	d.hooks.OnPackageRegistered(fn)
}

func (d *database) OnPackageUnregistered(fn PackageUnregisteredHook) {
	d.hooks.OnPackageUnregistered(fn)
}
