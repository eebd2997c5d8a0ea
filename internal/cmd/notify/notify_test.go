package notify_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgdb/internal/cmd/notify"
	"github.com/agentstation/pkgdb/internal/cmd/output"
)

func newNotifier(chroot bool) (*notify.Notifier, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return notify.New(notify.Config{
		OutputFormat: output.FormatText,
		Chroot:       chroot,
		Out:          &out,
		Err:          &errOut,
	}), &out, &errOut
}

func TestMessages(t *testing.T) {
	n, out, errOut := newNotifier(false)

	require.NoError(t, n.DatabaseCreated())
	require.NoError(t, n.Registered("foo", "1.0"))
	require.NoError(t, n.AlreadyRegistered("foo", "1.0"))
	require.NoError(t, n.Unregistered("foo", "1.0"))
	require.NoError(t, n.NotRegistered("baz"))

	assert.Equal(t,
		"==> Package database file not found, creating it.\n"+
			"=> foo-1.0 registered successfully.\n"+
			"=> Package foo-1.0 already registered.\n"+
			"=> foo-1.0 unregistered successfully.\n",
		out.String())
	assert.Equal(t, "=> ERROR: baz not registered in database.\n", errOut.String())
}

func TestChrootPrefix(t *testing.T) {
	n, out, errOut := newNotifier(true)

	require.NoError(t, n.Registered("foo", "1.0"))
	require.NoError(t, n.Error("couldn't write to database file."))

	assert.Equal(t, "[chroot] => foo-1.0 registered successfully.\n", out.String())
	assert.Equal(t, "[chroot] => ERROR: couldn't write to database file.\n", errOut.String())
}

func TestQuiet(t *testing.T) {
	var out, errOut bytes.Buffer
	n := notify.New(notify.Config{Quiet: true, Out: &out, Err: &errOut})

	require.NoError(t, n.Registered("foo", "1.0"))
	require.NoError(t, n.Warning("careful"))

	assert.Empty(t, out.String())
	assert.Equal(t, "=> WARNING: careful\n", errOut.String())
}

func TestInChroot(t *testing.T) {
	t.Setenv("in_chroot", "")
	assert.True(t, notify.InChroot(), "presence alone enables the prefix")
}

func TestFailure(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		n, _, errOut := newNotifier(true)
		require.NoError(t, n.Failure("loading config", errors.New("no such file"), "check --config"))
		assert.Equal(t, "[chroot] => ERROR: loading config: no such file\n   check --config\n", errOut.String())
	})

	t.Run("cause only", func(t *testing.T) {
		n, _, errOut := newNotifier(false)
		require.NoError(t, n.Failure("", errors.New("database not found")))
		assert.Equal(t, "=> ERROR: database not found\n", errOut.String())
	})

	t.Run("json", func(t *testing.T) {
		var out, errOut bytes.Buffer
		n := notify.New(notify.Config{OutputFormat: output.FormatJSON, Quiet: true, Out: &out, Err: &errOut})
		require.NoError(t, n.Failure("lock", errors.New("timed out"), "retry"))
		assert.Empty(t, out.String())
		assert.JSONEq(t, `{"level":"error","message":"lock","error":"timed out","details":["retry"]}`, errOut.String())
	})
}

type settings struct {
	format string
	chroot bool
	quiet  bool
}

func (s settings) OutputFormat() string { return s.format }
func (s settings) InChroot() bool       { return s.chroot }
func (s settings) Quiet() bool          { return s.quiet }

func TestForCommand(t *testing.T) {
	tests := []struct {
		name     string
		settings settings
		wantOut  string
	}{
		{"text", settings{format: "text"}, "=> foo-1.0 registered successfully.\n"},
		{"chroot", settings{chroot: true}, "[chroot] => foo-1.0 registered successfully.\n"},
		{"quiet", settings{quiet: true}, ""},
		{"unknown format falls back to text", settings{format: "xml"}, "=> foo-1.0 registered successfully.\n"},
		{"json", settings{format: "json"}, `{"level":"success","message":"foo-1.0 registered successfully."}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&out)

			require.NoError(t, notify.ForCommand(cmd, tt.settings).Registered("foo", "1.0"))
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}
