package cmdutil

import (
	"github.com/spf13/cobra"
)

// ExactArgs is cobra.ExactArgs reporting a usage error.
func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return UsageError("%s: expected %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// NoSubcommand rejects positional arguments on a command that only
// dispatches to subcommands, which is how unknown actions arrive.
func NoSubcommand(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return UsageError("unknown action %q", args[0])
	}
	return nil
}

// FlagError adapts flag parse failures to usage errors.
func FlagError(_ *cobra.Command, err error) error {
	return UsageError("%v", err)
}
