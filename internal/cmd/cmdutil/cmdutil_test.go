package cmdutil_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgdb/internal/cmd/cmdutil"
	pkgerrors "github.com/agentstation/pkgdb/pkg/errors"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, 0, cmdutil.GetExitCode(nil))
	assert.Equal(t, 1, cmdutil.GetExitCode(errors.New("plain")))
	assert.Equal(t, 3, cmdutil.GetExitCode(cmdutil.NewExitError(3, "custom")))
	assert.Equal(t, 2, cmdutil.GetExitCode(fmt.Errorf("wrapped: %w", cmdutil.NewExitError(2, "x"))))
}

func TestExitErrorMessage(t *testing.T) {
	cause := errors.New("cause")
	assert.Equal(t, "msg: cause", cmdutil.WrapExitError(1, "msg", cause).Error())
	assert.Equal(t, "msg", cmdutil.NewExitError(1, "msg").Error())
	assert.Equal(t, "cause", cmdutil.SilentError(1, cause).Error())
	assert.Equal(t, "exit status 1", cmdutil.SilentError(1, nil).Error())
	assert.ErrorIs(t, cmdutil.SilentError(1, cause), cause)
}

func TestExactArgs(t *testing.T) {
	cmd := &cobra.Command{Use: "register"}
	validate := cmdutil.ExactArgs(3)

	require.NoError(t, validate(cmd, []string{"foo", "1.0", "desc"}))

	err := validate(cmd, []string{"foo"})
	var exitErr *cmdutil.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.Usage)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, err.Error(), "expected 3")
}

func TestNoSubcommand(t *testing.T) {
	require.NoError(t, cmdutil.NoSubcommand(nil, nil))

	err := cmdutil.NoSubcommand(nil, []string{"frobnicate"})
	assert.EqualError(t, err, `unknown action "frobnicate"`)
}

func TestIsPackageNotFound(t *testing.T) {
	assert.True(t, cmdutil.IsPackageNotFound(&pkgerrors.NotFoundError{Resource: "package", ID: "foo"}))
	assert.False(t, cmdutil.IsPackageNotFound(&pkgerrors.NotFoundError{Resource: "database", ID: "/x"}))
	assert.False(t, cmdutil.IsPackageNotFound(errors.New("other")))
}
