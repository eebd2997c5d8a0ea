// Package unregister implements the unregister action.
package unregister

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/pkgdb/cmd/application"
	"github.com/agentstation/pkgdb/internal/cmd/cmdutil"
	"github.com/agentstation/pkgdb/internal/cmd/completion"
	"github.com/agentstation/pkgdb/internal/cmd/notify"
)

// NewCommand creates the unregister command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unregister <pkgname> <version>",
		Short: "Remove a package from the database",
		Long: `Unregister removes the package with the given name. Packages are matched
by name only; the version is echoed in the confirmation.`,
		Example:           `  pkgdb unregister foo 1.0`,
		Args:              cmdutil.ExactArgs(2),
		ValidArgsFunction: completion.PackageNames(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, version := args[0], args[1]
			n := notify.ForCommand(cmd, app)

			db, err := app.Ledger()
			if err != nil {
				return err
			}

			if _, err := db.Unregister(cmd.Context(), name, version); err != nil {
				if cmdutil.IsPackageNotFound(err) {
					_ = n.NotRegistered(name)
					return cmdutil.SilentError(cmdutil.ExitFailure, err)
				}
				return err
			}

			return n.Unregistered(name, version)
		},
	}
	// Flags end at the first argument.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
