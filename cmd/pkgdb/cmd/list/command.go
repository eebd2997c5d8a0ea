// Package list implements the list action.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/pkgdb/cmd/application"
	"github.com/agentstation/pkgdb/internal/cmd/cmdutil"
	"github.com/agentstation/pkgdb/internal/cmd/output"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every registered package",
		Long: `List prints one line per registered package, in registration order:

  <pkgname>-<version><TAB><shortdesc>

Use --format to print a table, JSON or YAML instead.`,
		Example: `  pkgdb list
  pkgdb list --format table`,
		Args: cmdutil.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return cmdutil.UsageError("--format: %v", err)
			}

			db, err := app.Ledger()
			if err != nil {
				return err
			}

			pkgs, err := db.List(cmd.Context())
			if err != nil {
				return err
			}
			app.Logger().Debug().Int("count", len(pkgs)).Msg("Listing packages")

			return output.NewFormatter(format).Format(cmd.OutOrStdout(), pkgs)
		},
	}
}
