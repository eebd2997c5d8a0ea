//go:build unix

package lock_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgdb/internal/lock"
	"github.com/agentstation/pkgdb/pkg/errors"
)

func dbPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "pkgdb.plist")
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/var/xbps/.xbps-pkgdb.plist.lock", lock.Path("/var/xbps/.xbps-pkgdb.plist"))
}

func TestExclusiveBlocksExclusive(t *testing.T) {
	db := dbPath(t)

	held, err := lock.Acquire(context.Background(), db, lock.Exclusive)
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = lock.Acquire(ctx, db, lock.Exclusive)
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err), "got %v", err)
}

func TestExclusiveBlocksShared(t *testing.T) {
	db := dbPath(t)

	held, err := lock.Acquire(context.Background(), db, lock.Exclusive)
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = lock.Acquire(ctx, db, lock.Shared)
	assert.True(t, errors.IsTimeout(err))
}

// createLockFile takes and drops an exclusive lock so the lock file exists.
func createLockFile(t *testing.T, db string) {
	t.Helper()
	held, err := lock.Acquire(context.Background(), db, lock.Exclusive)
	require.NoError(t, err)
	require.NoError(t, held.Release())
}

func TestSharedAllowsShared(t *testing.T) {
	db := dbPath(t)
	createLockFile(t, db)

	first, err := lock.Acquire(context.Background(), db, lock.Shared)
	require.NoError(t, err)
	second, err := lock.Acquire(context.Background(), db, lock.Shared)
	require.NoError(t, err)

	assert.True(t, first.Held())
	assert.True(t, second.Held())
	assert.Equal(t, lock.Shared, second.Mode())
	require.NoError(t, second.Release())
	require.NoError(t, first.Release())
}

func TestReleaseUnblocksWaiter(t *testing.T) {
	db := dbPath(t)

	held, err := lock.Acquire(context.Background(), db, lock.Exclusive)
	require.NoError(t, err)

	go func() {
		time.Sleep(40 * time.Millisecond)
		_ = held.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	waiter, err := lock.Acquire(ctx, db, lock.Exclusive)
	require.NoError(t, err)
	assert.Equal(t, lock.Exclusive, waiter.Mode())
	require.NoError(t, waiter.Release())
}

func TestCanceledContext(t *testing.T) {
	db := dbPath(t)

	held, err := lock.Acquire(context.Background(), db, lock.Exclusive)
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = lock.Acquire(ctx, db, lock.Exclusive)
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
	assert.False(t, errors.IsTimeout(err))
}

func TestReleaseIsIdempotent(t *testing.T) {
	l, err := lock.Acquire(context.Background(), dbPath(t), lock.Exclusive)
	require.NoError(t, err)
	require.NoError(t, l.Release())
	require.NoError(t, l.Release())

	var nilLock *lock.Lock
	assert.NoError(t, nilLock.Release())
}

func TestMissingDirectory(t *testing.T) {
	_, err := lock.Acquire(context.Background(), filepath.Join(t.TempDir(), "nope", "db"), lock.Exclusive)
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.True(t, errors.IsWriteError(err))
}

func TestSharedNeverCreatesLockFile(t *testing.T) {
	for name, db := range map[string]string{
		"absent lock file":  dbPath(t),
		"missing directory": filepath.Join(t.TempDir(), "nope", "db"),
	} {
		t.Run(name, func(t *testing.T) {
			l, err := lock.Acquire(context.Background(), db, lock.Shared)
			require.NoError(t, err)
			assert.False(t, l.Held())
			assert.Equal(t, lock.Shared, l.Mode())
			require.NoError(t, l.Release())

			_, err = os.Stat(lock.Path(db))
			assert.True(t, os.IsNotExist(err), "shared lock must not create %s", lock.Path(db))
		})
	}
}

func TestSharedInReadOnlyDirectory(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "pkgdb.plist")
	createLockFile(t, db)

	require.NoError(t, os.Chmod(lock.Path(db), 0o444))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	l, err := lock.Acquire(context.Background(), db, lock.Shared)
	require.NoError(t, err)
	assert.True(t, l.Held(), "flock works on a read-only descriptor")
	require.NoError(t, l.Release())
}

func TestSharedBlockedOnReadOnlyLockFile(t *testing.T) {
	db := dbPath(t)
	held, err := lock.Acquire(context.Background(), db, lock.Exclusive)
	require.NoError(t, err)
	defer held.Release()
	require.NoError(t, os.Chmod(lock.Path(db), 0o444))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = lock.Acquire(ctx, db, lock.Shared)
	assert.True(t, errors.IsTimeout(err), "a read-only lock file still excludes readers from writers")
}
