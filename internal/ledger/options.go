package ledger

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/pkgdb/pkg/constants"
	"github.com/agentstation/pkgdb/pkg/save"
)

// options configures a Ledger.
type options struct {
	logger      *zerolog.Logger
	lockTimeout time.Duration
	noLock      bool
	saveOpts    []save.Option
}

func defaults() *options {
	return &options{
		lockTimeout: constants.DefaultLockTimeout,
	}
}

// Option configures a Ledger.
type Option func(*options)

// WithLogger sets the logger used for operation events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLockTimeout bounds how long an operation waits for the database lock.
// Zero or negative waits until the caller's context is done.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lockTimeout = d
	}
}

// WithoutLock disables the advisory lock.
func WithoutLock() Option {
	return func(o *options) {
		o.noLock = true
	}
}

// WithSaveOptions passes persistence options to every load and save.
func WithSaveOptions(opts ...save.Option) Option {
	return func(o *options) {
		o.saveOpts = append(o.saveOpts, opts...)
	}
}
