// Package register implements the register action.
package register

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/pkgdb/cmd/application"
	"github.com/agentstation/pkgdb/internal/cmd/cmdutil"
	"github.com/agentstation/pkgdb/internal/cmd/notify"
	"github.com/agentstation/pkgdb/pkg/packages"
)

// NewCommand creates the register command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <pkgname> <version> <shortdesc>",
		Short: "Add a package to the database",
		Long: `Register records a package. The database file is created if it does
not exist. Registering a name that is already present changes nothing
and is not an error.`,
		Example: `  pkgdb register foo 1.0 "Foo tool"`,
		Args:    cmdutil.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := packages.Package{Name: args[0], Version: args[1], Description: args[2]}
			n := notify.ForCommand(cmd, app)

			db, err := app.Ledger()
			if err != nil {
				return err
			}

			result, err := db.Register(cmd.Context(), pkg)
			if result.Created {
				_ = n.DatabaseCreated()
			}
			if err != nil {
				return err
			}

			if result.AlreadyRegistered {
				return n.AlreadyRegistered(pkg.Name, pkg.Version)
			}
			return n.Registered(pkg.Name, pkg.Version)
		},
	}
	// Flags end at the first argument, so a description such as "-dev
	// snapshot" stays an argument.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
