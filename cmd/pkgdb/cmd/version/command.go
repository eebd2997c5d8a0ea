// Package version implements the version action.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/pkgdb/cmd/application"
	"github.com/agentstation/pkgdb/internal/cmd/cmdutil"
	"github.com/agentstation/pkgdb/internal/cmd/completion"
	"github.com/agentstation/pkgdb/internal/cmd/output"
)

// Info is the structured form of the version output.
type Info struct {
	Name    string `json:"pkgname" yaml:"pkgname"`
	Version string `json:"version" yaml:"version"`
}

// NewCommand creates the version command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version <pkgname>",
		Short: "Print the registered version of a package",
		Long: `Version prints the version recorded for a package. An unregistered
package prints nothing and exits with status 1, so scripts can test
whether a package is installed.`,
		Example:           `  pkgdb version foo`,
		Args:              cmdutil.ExactArgs(1),
		ValidArgsFunction: completion.PackageNames(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return cmdutil.UsageError("--format: %v", err)
			}

			db, err := app.Ledger()
			if err != nil {
				return err
			}

			v, err := db.Version(cmd.Context(), name)
			if err != nil {
				if cmdutil.IsPackageNotFound(err) {
					return cmdutil.SilentError(cmdutil.ExitFailure, err)
				}
				return err
			}

			switch format {
			case output.FormatText:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
				return err
			case output.FormatTable:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), output.Data{
					Headers: []string{"Pkgname", "Version"},
					Rows:    [][]string{{name, v}},
				})
			default:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), Info{Name: name, Version: v})
			}
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}
