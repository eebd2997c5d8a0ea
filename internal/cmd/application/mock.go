// Package application provides test doubles for cmd/application.
package application

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/agentstation/pkgdb/cmd/application"
	"github.com/agentstation/pkgdb/pkg/constants"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    LedgerFunc: func() (application.Ledger, error) {
//	        return ledger.New(path), nil
//	    },
//	}
//	cmd := register.NewCommand(mock)
type Mock struct {
	LedgerFunc       func() (application.Ledger, error)
	DatabasePathFunc func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	InChrootFunc     func() bool
	QuietFunc        func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ application.Application = (*Mock)(nil)

// Ledger returns a ledger using the mock function or an error.
func (m *Mock) Ledger() (application.Ledger, error) {
	if m.LedgerFunc != nil {
		return m.LedgerFunc()
	}
	return nil, errors.New("mock: no ledger configured")
}

// DatabasePath returns the path using the mock function or the default path.
func (m *Mock) DatabasePath() string {
	if m.DatabasePathFunc != nil {
		return m.DatabasePathFunc()
	}
	return constants.DefaultDatabasePath
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "text".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "text"
}

// InChroot returns the chroot flag using the mock function or false.
func (m *Mock) InChroot() bool {
	if m.InChrootFunc != nil {
		return m.InChrootFunc()
	}
	return false
}

// Quiet returns the quiet flag using the mock function or false.
func (m *Mock) Quiet() bool {
	if m.QuietFunc != nil {
		return m.QuietFunc()
	}
	return false
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
