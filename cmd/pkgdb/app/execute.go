package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/pkgdb/internal/cmd/alerts"
	"github.com/agentstation/pkgdb/internal/cmd/cmdutil"
	"github.com/agentstation/pkgdb/internal/cmd/notify"
	"github.com/agentstation/pkgdb/internal/cmd/output"
	"github.com/agentstation/pkgdb/pkg/constants"
	pkgerrors "github.com/agentstation/pkgdb/pkg/errors"
)

const usageLong = `pkgdb maintains the package registration database: an ordered list of
installed packages, each recorded with a name, a version and a short
description.

Actions:
  list                                      print every registered package
  register <pkgname> <version> <shortdesc>  add a package
  unregister <pkgname> <version>            remove a package
  version <pkgname>                         print the registered version

Environment:
  ` + constants.DatabasePathEnv + `  path of the database file
                    (default ` + constants.DefaultDatabasePath + `)
  ` + constants.ChrootEnv + `         when set, status lines are prefixed with "` + constants.ChrootPrefix + `"`

const usageExample = `  pkgdb list
  pkgdb register pkgdb 0.1 "pkgdb database tool"
  pkgdb unregister pkgdb 0.1
  pkgdb version pkgdb
  ` + constants.DatabasePathEnv + `=./pkgdb.yaml pkgdb list --format table`

// Execute runs the pkgdb CLI application with the given arguments.
// The returned error has already been reported on the error stream
// unless it is nil.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return nil
	}
	if cmd == nil {
		cmd = rootCmd
	}
	return a.report(cmd, err)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "pkgdb <action> [arguments]",
		Short:             "Package registration database",
		Long:              usageLong,
		Example:           usageExample,
		Version:           a.version,
		Args:              cmdutil.NoSubcommand,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmdutil.UsageError("missing action")
		},
	}
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetFlagErrorFunc(cmdutil.FlagError)

	if a.out != nil {
		rootCmd.SetOut(a.out)
	}
	if a.errOut != nil {
		rootCmd.SetErr(a.errOut)
	}

	// Defaults come from the loaded config so help shows the effective values;
	// only flags set on the command line are applied in setupCommand.
	flags := rootCmd.PersistentFlags()
	flags.String("db", a.config.DatabasePath, "database file (env "+constants.DatabasePathEnv+")")
	flags.String("db-format", a.config.DatabaseFormat, "database encoding: auto, yaml, json, plist")
	flags.StringP("format", "o", a.config.Format, "output format: text, table, json, yaml")
	flags.Duration("lock-timeout", a.config.LockTimeout, "how long to wait for the database lock (0 waits forever)")
	flags.Bool("no-lock", a.config.NoLock, "do not take the database lock")
	flags.String("config", "", "config file (default is $HOME/"+constants.ConfigFileName+".yaml)")
	flags.String("log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.BoolP("verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", a.config.Quiet, "suppress status lines (and set --log-level=error)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("pkgdb {{.Version}}\ncommit: %s\nbuilt: %s by %s\n",
		a.Commit(), a.Date(), a.BuiltBy()))

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		config, err := LoadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return cmdutil.WrapExitError(cmdutil.ExitFailure, "loading config", err)
		}
		a.config = config
	}

	if err := a.config.UpdateFromFlags(cmd.Flags()); err != nil {
		return cmdutil.UsageError("%v", err)
	}
	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return cmdutil.UsageError("--format: %v", err)
	}
	if err := a.config.Validate(); err != nil {
		return cmdutil.UsageError("%v", err)
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	a.logger.Debug().
		Str("db", a.config.DatabasePath).
		Str("config", a.config.ConfigFile).
		Bool("chroot", a.config.Chroot).
		Msg("Configuration loaded")

	return nil
}

// report writes err to the command's error stream and returns it marked
// as reported. Usage errors are followed by the command's usage.
func (a *App) report(cmd *cobra.Command, err error) error {
	var exitErr *cmdutil.ExitError
	if !errors.As(err, &exitErr) {
		exitErr = cmdutil.WrapExitError(cmdutil.ExitFailure, "", err)
		err = exitErr
	}
	if exitErr.Silent || exitErr.Reported {
		return err
	}

	a.logger.Debug().Err(err).Str("command", cmd.CommandPath()).Msg("Command failed")

	var details []string
	if pkgerrors.IsTimeout(err) {
		details = append(details, "another pkgdb process may be running; retry, or raise --lock-timeout")
	}

	// Quiet only silences status lines
	message, cause := exitErr.Message, exitErr.Err
	if message == "" && cause == nil {
		message = exitErr.Error()
	}
	_ = notify.ForCommand(cmd, a).Failure(message, cause, details...)
	if exitErr.Usage {
		usage := "\n"
		if !cmd.HasParent() {
			usage += cmd.Long + "\n\n"
		}
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), usage+cmd.UsageString())
	}
	exitErr.Reported = true
	return err
}

// ExitOnError exits with the code carried by err. Errors that were not
// already reported by Execute are printed first.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	var exitErr *cmdutil.ExitError
	if !errors.As(err, &exitErr) || !(exitErr.Silent || exitErr.Reported) {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(alerts.LevelError.Prefix() + err.Error() + "\n")
	}
	os.Exit(cmdutil.GetExitCode(err))
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
