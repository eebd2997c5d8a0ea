// Package ledger implements the four database use cases: list, register,
// unregister and version. Each call loads the whole database under the
// advisory lock, performs one query or mutation and, for mutations,
// writes the whole database back.
package ledger

import (
	"context"
	"os"

	"github.com/agentstation/pkgdb/internal/lock"
	"github.com/agentstation/pkgdb/pkg/errors"
	"github.com/agentstation/pkgdb/pkg/logging"
	"github.com/agentstation/pkgdb/pkg/packages"
	"github.com/agentstation/pkgdb/pkg/persistence"
)

// Ledger operates on the database file at one path.
type Ledger struct {
	path string
	opts *options
}

// RegisterResult describes what Register did.
type RegisterResult struct {
	// Package is the record that was requested.
	Package packages.Package
	// Created is set when the database file did not exist and was created.
	Created bool
	// AlreadyRegistered is set when a record with the same name exists;
	// the database is not rewritten in that case.
	AlreadyRegistered bool
}

// New returns a Ledger for the database at path.
func New(path string, opts ...Option) *Ledger {
	o := defaults()
	for _, opt := range opts {
		opt(o)
	}
	return &Ledger{path: path, opts: o}
}

// Path returns the database path.
func (l *Ledger) Path() string {
	return l.path
}

// List returns every record in stored order.
func (l *Ledger) List(ctx context.Context) ([]packages.Package, error) {
	ctx = l.context(ctx, "list")

	release, err := l.lock(ctx, lock.Shared)
	if err != nil {
		return nil, err
	}
	defer release()

	store, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return store.List(), nil
}

// Register adds pkg. A missing database is created; a name that is
// already registered is reported in the result, not as an error.
func (l *Ledger) Register(ctx context.Context, pkg packages.Package) (RegisterResult, error) {
	ctx = logging.WithPackage(l.context(ctx, "register"), pkg.Name)
	result := RegisterResult{Package: pkg}

	if err := pkg.Validate(); err != nil {
		return result, err
	}

	release, err := l.lock(ctx, lock.Exclusive)
	if err != nil {
		return result, err
	}
	defer release()

	exists, err := persistence.Exists(l.path)
	if err != nil {
		return result, err
	}

	var store *packages.Packages
	if exists {
		if store, err = l.load(ctx); err != nil {
			return result, err
		}
	} else {
		logging.FromContext(ctx).Info().Msg("Database not found, creating it")
		store = packages.New()
		result.Created = true
	}

	if err := store.Add(pkg); err != nil {
		if errors.IsAlreadyExists(err) {
			logging.FromContext(ctx).Debug().Msg("Package already registered")
			result.AlreadyRegistered = true
			return result, nil
		}
		return result, err
	}

	if err := l.save(ctx, store); err != nil {
		return result, err
	}

	logging.FromContext(ctx).Info().Str("version", pkg.Version).Msg("Package registered")
	return result, nil
}

// Unregister removes the record named name and returns it. Matching is by
// name only; version is checked against the stored record and a mismatch
// is logged.
func (l *Ledger) Unregister(ctx context.Context, name, version string) (packages.Package, error) {
	ctx = logging.WithPackage(l.context(ctx, "unregister"), name)

	// Report a missing database the way Load does, before the exclusive
	// lock creates a lock file next to it.
	if _, err := os.Stat(l.path); err != nil {
		return packages.Package{}, &errors.NotFoundError{Resource: "database", ID: l.path, Err: err}
	}

	release, err := l.lock(ctx, lock.Exclusive)
	if err != nil {
		return packages.Package{}, err
	}
	defer release()

	store, err := l.load(ctx)
	if err != nil {
		return packages.Package{}, err
	}

	removed, err := store.Remove(name)
	if err != nil {
		return packages.Package{}, err
	}

	if version != "" && removed.Version != version {
		logging.FromContext(ctx).Warn().
			Str("requested", version).
			Str("registered", removed.Version).
			Msg("Version mismatch, unregistering by name")
	}

	if err := l.save(ctx, store); err != nil {
		return packages.Package{}, err
	}

	logging.FromContext(ctx).Info().Msg("Package unregistered")
	return removed, nil
}

// Version returns the registered version of name.
func (l *Ledger) Version(ctx context.Context, name string) (string, error) {
	ctx = logging.WithPackage(l.context(ctx, "version"), name)

	release, err := l.lock(ctx, lock.Shared)
	if err != nil {
		return "", err
	}
	defer release()

	store, err := l.load(ctx)
	if err != nil {
		return "", err
	}

	pkg, ok := store.Find(name)
	if !ok {
		return "", &errors.NotFoundError{Resource: "package", ID: name}
	}
	return pkg.Version, nil
}

func (l *Ledger) context(ctx context.Context, op string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if l.opts.logger != nil {
		ctx = logging.WithLogger(ctx, l.opts.logger)
	}
	return logging.WithOperation(logging.WithDatabase(ctx, l.path), op)
}

// lock acquires the database lock and returns its release func.
func (l *Ledger) lock(ctx context.Context, mode lock.Mode) (func(), error) {
	if l.opts.noLock {
		return func() {}, nil
	}

	lockCtx := ctx
	if l.opts.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, l.opts.lockTimeout)
		defer cancel()
	}

	held, err := lock.Acquire(lockCtx, l.path, mode)
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	if held.Held() {
		logger.Debug().Stringer("mode", mode).Msg("Lock acquired")
	} else {
		logger.Debug().Stringer("mode", mode).Msg("Lock file unavailable, reading unlocked")
	}

	return func() {
		if err := held.Release(); err != nil {
			logger.Warn().Err(err).Msg("Failed to release lock")
		}
	}, nil
}

func (l *Ledger) load(ctx context.Context) (*packages.Packages, error) {
	store, err := persistence.Load(l.path, l.opts.saveOpts...)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().Int("count", store.Len()).Msg("Database loaded")
	return store, nil
}

func (l *Ledger) save(ctx context.Context, store *packages.Packages) error {
	if err := persistence.Save(store, l.path, l.opts.saveOpts...); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Int("count", store.Len()).Msg("Database saved")
	return nil
}
