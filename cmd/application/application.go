// Package application provides the application interface for pkgdb commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            db, err := app.Ledger()
//	            if err != nil {
//	                return err
//	            }
//	            pkgs, err := db.List(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... print pkgs
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    LedgerFunc: func() (application.Ledger, error) {
//	        return ledger.New(filepath.Join(t.TempDir(), "pkgdb.plist")), nil
//	    },
//	}
//	cmd := list.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/pkgdb/internal/ledger"
	"github.com/agentstation/pkgdb/pkg/packages"
)

// Ledger is the set of database operations commands run.
// *ledger.Ledger implements it.
type Ledger interface {
	List(ctx context.Context) ([]packages.Package, error)
	Register(ctx context.Context, pkg packages.Package) (ledger.RegisterResult, error)
	Unregister(ctx context.Context, name, version string) (packages.Package, error)
	Version(ctx context.Context, name string) (string, error)
}

var _ Ledger = (*ledger.Ledger)(nil)

// Application provides the application interface that commands need.
// The App struct from cmd/pkgdb/app implements this interface.
type Application interface {
	// Ledger returns the ledger for the configured database path.
	Ledger() (Ledger, error)

	// DatabasePath returns the resolved database file path.
	DatabasePath() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (text, table, json, yaml).
	OutputFormat() string

	// InChroot reports whether status lines carry the chroot prefix.
	InChroot() bool

	// Quiet reports whether status lines are suppressed.
	Quiet() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
