//go:build unix

package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgdb/internal/cmd/cmdutil"
	"github.com/agentstation/pkgdb/internal/lock"
)

func TestExecuteLockTimeout(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "pkgdb.plist")
	require.NoError(t, run(t, db, "register", "foo", "1.0", "d").err)

	held, err := lock.Acquire(context.Background(), db, lock.Exclusive)
	require.NoError(t, err)
	defer held.Release()

	r := run(t, db, "--lock-timeout", "20ms", "register", "bar", "2.0", "e")
	require.Error(t, r.err)
	assert.Equal(t, 1, cmdutil.GetExitCode(r.err))
	assert.Contains(t, r.errOut, "=> ERROR: ")
	assert.Contains(t, r.errOut, "is locked by another process")
	assert.Contains(t, r.errOut, "\n   another pkgdb process may be running; retry, or raise --lock-timeout\n")

	r = run(t, db, "--lock-timeout", "20ms", "-o", "json", "version", "foo")
	require.Error(t, r.err)
	assert.Contains(t, r.errOut, `"details":["another pkgdb process may be running; retry, or raise --lock-timeout"]`)
}
