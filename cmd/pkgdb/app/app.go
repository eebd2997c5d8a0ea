// Package app provides the application context and dependency management
// for the pkgdb CLI. It centralizes configuration, logging and construction
// of the database the commands operate on.
package app

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/pkgdb"
	"github.com/agentstation/pkgdb/cmd/application"
	"github.com/agentstation/pkgdb/pkg/errors"
	"github.com/agentstation/pkgdb/pkg/packages"
	"github.com/agentstation/pkgdb/pkg/save"
)

// App represents the pkgdb application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Command streams; nil means the process streams.
	out    io.Writer
	errOut io.Writer
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment, .env files and the default
// config file locations, and can be replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// DatabasePath returns the configured database file path.
func (a *App) DatabasePath() string {
	return a.config.DatabasePath
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// InChroot reports whether the chroot marker was present.
func (a *App) InChroot() bool {
	return a.config.Chroot
}

// Quiet reports whether status lines are suppressed.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// Ledger opens the configured database. A new value is returned on every
// call; it holds no state between operations.
func (a *App) Ledger() (application.Ledger, error) {
	opts := []pkgdb.Option{
		pkgdb.WithPath(a.config.DatabasePath),
		pkgdb.WithLogger(a.logger),
		pkgdb.WithLockTimeout(a.config.LockTimeout),
	}
	if a.config.NoLock {
		opts = append(opts, pkgdb.WithoutLock())
	}
	if format, ok := save.ParseFormat(a.config.DatabaseFormat); ok {
		opts = append(opts, pkgdb.WithFormat(format))
	}

	db, err := pkgdb.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("open", "database", a.config.DatabasePath, err)
	}

	db.OnPackageRegistered(func(pkg packages.Package) {
		a.logger.Info().Str("pkgname", pkg.Name).Str("version", pkg.Version).Msg("Registered")
	})
	db.OnPackageUnregistered(func(pkg packages.Package) {
		a.logger.Info().Str("pkgname", pkg.Name).Str("version", pkg.Version).Msg("Unregistered")
	})
	return db, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config cannot be nil")
		}
		a.config = config
		logger := NewLogger(config)
		a.logger = &logger
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput directs command output and errors to the given writers.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) error {
		a.out = out
		a.errOut = errOut
		return nil
	}
}
