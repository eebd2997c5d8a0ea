// Package notify writes the status lines printed by pkgdb commands.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/pkgdb/internal/cmd/alerts"
	"github.com/agentstation/pkgdb/internal/cmd/output"
	"github.com/agentstation/pkgdb/pkg/constants"
)

// Notifier sends status alerts to stdout and error alerts to stderr.
type Notifier struct {
	status alerts.Writer
	errors alerts.Writer
	config Config
}

// Config controls notification behavior.
type Config struct {
	OutputFormat output.Format
	Chroot       bool      // Prefix plain lines with "[chroot] "
	Quiet        bool      // Suppress status alerts; errors are still written
	Out          io.Writer // Status destination (default: stdout)
	Err          io.Writer // Error destination (default: stderr)
}

// InChroot reports whether the chroot marker variable is set. Only its
// presence matters, not its value.
func InChroot() bool {
	_, ok := os.LookupEnv(constants.ChrootEnv)
	return ok
}

// New creates a new Notifier with the given configuration.
func New(config Config) *Notifier {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Err == nil {
		config.Err = os.Stderr
	}

	writerConfig := alerts.WriterConfig{ShowDetails: true}
	if config.Chroot {
		writerConfig.Prefix = constants.ChrootPrefix
	}

	n := &Notifier{
		status: alerts.NewFormatWriter(config.Out, config.OutputFormat).WithConfig(writerConfig),
		errors: alerts.NewFormatWriter(config.Err, config.OutputFormat).WithConfig(writerConfig),
		config: config,
	}
	if config.Quiet {
		n.status = alerts.DiscardWriter
	}
	return n
}

// Settings is the part of the application a Notifier reads.
type Settings interface {
	OutputFormat() string
	InChroot() bool
	Quiet() bool
}

// ForCommand creates a Notifier for the command's streams using the
// application settings. An unrecognized output format falls back to text.
func ForCommand(cmd *cobra.Command, s Settings) *Notifier {
	format, err := output.ParseFormat(s.OutputFormat())
	if err != nil {
		format = output.FormatText
	}
	return New(Config{
		OutputFormat: format,
		Chroot:       s.InChroot(),
		Quiet:        s.Quiet(),
		Out:          cmd.OutOrStdout(),
		Err:          cmd.ErrOrStderr(),
	})
}

// Alert routes an alert by level.
func (n *Notifier) Alert(alert *alerts.Alert) error {
	switch alert.Level {
	case alerts.LevelError, alerts.LevelWarning:
		return n.errors.WriteAlert(alert)
	default:
		return n.status.WriteAlert(alert)
	}
}

// Success sends a success alert.
func (n *Notifier) Success(message string) error {
	return n.Alert(alerts.NewSuccess(message))
}

// Info sends an info alert.
func (n *Notifier) Info(message string) error {
	return n.Alert(alerts.NewInfo(message))
}

// Notice sends a notice alert.
func (n *Notifier) Notice(message string) error {
	return n.Alert(alerts.NewNotice(message))
}

// Warning sends a warning alert.
func (n *Notifier) Warning(message string) error {
	return n.Alert(alerts.NewWarning(message))
}

// Error sends an error alert.
func (n *Notifier) Error(message string) error {
	return n.Alert(alerts.NewError(message))
}

// Failure reports a failed command. Plain text renders "message: cause";
// structured formats carry the cause and details in their own fields.
func (n *Notifier) Failure(message string, cause error, details ...string) error {
	if message == "" && cause != nil {
		message, cause = cause.Error(), nil
	}
	return n.Alert(alerts.NewError(message).WithError(cause).WithDetails(details...))
}

// DatabaseCreated announces that register is creating a new database.
func (n *Notifier) DatabaseCreated() error {
	return n.Notice("Package database file not found, creating it.")
}

// Registered reports a successful register.
func (n *Notifier) Registered(name, version string) error {
	return n.Success(fmt.Sprintf("%s-%s registered successfully.", name, version))
}

// AlreadyRegistered reports a register that found the name taken.
func (n *Notifier) AlreadyRegistered(name, version string) error {
	return n.Info(fmt.Sprintf("Package %s-%s already registered.", name, version))
}

// Unregistered reports a successful unregister.
func (n *Notifier) Unregistered(name, version string) error {
	return n.Success(fmt.Sprintf("%s-%s unregistered successfully.", name, version))
}

// NotRegistered reports an unregister of an unknown name.
func (n *Notifier) NotRegistered(name string) error {
	return n.Error(fmt.Sprintf("%s not registered in database.", name))
}
