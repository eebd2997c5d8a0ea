// Package completion provides shell completion for pkgdb arguments.
package completion

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/pkgdb/cmd/application"
	"github.com/agentstation/pkgdb/pkg/constants"
)

// Func is the signature cobra expects for ValidArgsFunction.
type Func = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// PackageNames completes the first argument with registered package names,
// each described by its version and short description. Completion never
// fails: an unreadable or locked database completes nothing.
func PackageNames(app application.Application) Func {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, constants.CompletionTimeout)
		defer cancel()

		db, err := app.Ledger()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		pkgs, err := db.List(ctx)
		if err != nil {
			app.Logger().Debug().Err(err).Msg("Package completion unavailable")
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		names := make([]string, 0, len(pkgs))
		for _, pkg := range pkgs {
			if strings.HasPrefix(pkg.Name, toComplete) {
				names = append(names, pkg.Name+"\t"+pkg.Version+" "+pkg.Description)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
