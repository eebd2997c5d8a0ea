package pkgdb

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/pkgdb/internal/ledger"
	"github.com/agentstation/pkgdb/pkg/constants"
	"github.com/agentstation/pkgdb/pkg/errors"
	"github.com/agentstation/pkgdb/pkg/save"
)

// Option is a function that configures a Database.
type Option func(*config) error

// config holds the Database configuration.
type config struct {
	path        string
	logger      *zerolog.Logger
	lockTimeout time.Duration
	noLock      bool
	saveOpts    []save.Option
}

// defaultConfig uses the database path from the environment when it is
// set, otherwise the system default.
func defaultConfig() *config {
	path := constants.DefaultDatabasePath
	if env := os.Getenv(constants.DatabasePathEnv); env != "" {
		path = env
	}
	return &config{
		path:        path,
		lockTimeout: constants.DefaultLockTimeout,
	}
}

// options applies opts in order, stopping at the first error.
func (d *database) options(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(d.config); err != nil {
			return err
		}
	}
	return nil
}

func (c *config) ledgerOptions() []ledger.Option {
	opts := []ledger.Option{ledger.WithLockTimeout(c.lockTimeout)}
	if c.logger != nil {
		opts = append(opts, ledger.WithLogger(c.logger))
	}
	if c.noLock {
		opts = append(opts, ledger.WithoutLock())
	}
	if len(c.saveOpts) > 0 {
		opts = append(opts, ledger.WithSaveOptions(c.saveOpts...))
	}
	return opts
}

// WithPath sets the database file path.
func WithPath(path string) Option {
	return func(c *config) error {
		if strings.TrimSpace(path) == "" {
			return errors.NewValidationError("path", path, "database path cannot be empty")
		}
		c.path = path
		return nil
	}
}

// WithLogger sets the logger operations log to.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithLockTimeout bounds how long an operation waits for the database
// lock. Zero waits until the context is done.
func WithLockTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return errors.NewValidationError("lock_timeout", d, "cannot be negative")
		}
		c.lockTimeout = d
		return nil
	}
}

// WithoutLock disables the advisory database lock.
func WithoutLock() Option {
	return func(c *config) error {
		c.noLock = true
		return nil
	}
}

// WithFormat forces the on-disk encoding instead of choosing it by extension.
func WithFormat(format save.Format) Option {
	return func(c *config) error {
		if !format.IsValid() {
			return errors.NewValidationError("format", format, "unknown database format")
		}
		if format != save.FormatAuto {
			c.saveOpts = append(c.saveOpts, save.WithFormat(format))
		}
		return nil
	}
}

// WithSaveOptions passes persistence options through to every write.
func WithSaveOptions(opts ...save.Option) Option {
	return func(c *config) error {
		c.saveOpts = append(c.saveOpts, opts...)
		return nil
	}
}
