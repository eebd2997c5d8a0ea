// Package cmdutil provides exit-code handling and argument validation
// shared by pkgdb commands.
package cmdutil

import (
	"errors"
	"fmt"

	pkgerrors "github.com/agentstation/pkgdb/pkg/errors"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // Successful execution, including "already registered"
	ExitFailure = 1 // Any failure: usage, missing database, I/O, not found
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Process exit code
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Usage asks the caller to print command usage after the message.
	Usage bool
	// Silent suppresses the error line; the command already reported it
	// or the failure is signalled by exit code alone.
	Silent bool
	// Reported is set once the error line has been written.
	Reported bool
}

func (e *ExitError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// UsageError reports invalid arguments; usage is printed and the exit code is 1.
func UsageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitFailure, Message: fmt.Sprintf(format, args...), Usage: true}
}

// SilentError fails with code without printing anything further.
func SilentError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err, Silent: true}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsPackageNotFound reports whether err is a missing record rather than a
// missing database.
func IsPackageNotFound(err error) bool {
	var nf *pkgerrors.NotFoundError
	return errors.As(err, &nf) && nf.Resource == "package"
}
