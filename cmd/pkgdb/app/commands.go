package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/pkgdb/cmd/pkgdb/cmd/list"
	"github.com/agentstation/pkgdb/cmd/pkgdb/cmd/register"
	"github.com/agentstation/pkgdb/cmd/pkgdb/cmd/unregister"
	"github.com/agentstation/pkgdb/cmd/pkgdb/cmd/version"
)

// registerCommands registers all actions with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(register.NewCommand(a))
	rootCmd.AddCommand(unregister.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
