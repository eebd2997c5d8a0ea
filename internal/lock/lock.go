// Package lock provides the advisory lock held around every database
// read-modify-write. The lock lives in a sidecar file next to the
// database because each save renames a new file over the old one.
package lock

import (
	"context"
	"os"
	"time"

	"github.com/agentstation/pkgdb/pkg/constants"
	"github.com/agentstation/pkgdb/pkg/errors"
)

// Mode selects shared or exclusive locking.
type Mode int

const (
	// Shared allows other readers; used by queries.
	Shared Mode = iota
	// Exclusive excludes everyone else; used by mutations.
	Exclusive
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Exclusive {
		return "exclusive"
	}
	return "shared"
}

// Lock is a held advisory lock.
type Lock struct {
	path string
	mode Mode
	file *os.File
}

// Path returns the lock file used for the database at dbPath.
func Path(dbPath string) string {
	return dbPath + constants.LockFileSuffix
}

// Acquire takes the lock for dbPath in the given mode, retrying with
// backoff until ctx is done. A context deadline yields a TimeoutError.
//
// Only Exclusive creates the lock file. Shared opens it read-only; when it
// cannot be opened the returned Lock is not held and the caller reads
// unlocked. Saves replace the database by rename, so such a reader sees
// either the old or the new file, never a partial one.
func Acquire(ctx context.Context, dbPath string, mode Mode) (*Lock, error) {
	path := Path(dbPath)
	f, err := open(path, mode)
	if err != nil {
		if mode == Shared {
			return &Lock{path: path, mode: mode}, nil
		}
		return nil, errors.WrapIO("lock", path, err)
	}

	start := time.Now()
	delay := constants.LockRetryInterval
	for {
		ok, err := tryLock(f, mode)
		if err != nil {
			_ = f.Close()
			return nil, errors.WrapIO("lock", path, err)
		}
		if ok {
			return &Lock{path: path, mode: mode, file: f}, nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			_ = f.Close()
			if ctx.Err() == context.DeadlineExceeded {
				return nil, &errors.TimeoutError{
					Operation: mode.String() + " lock",
					Duration:  time.Since(start).Round(time.Millisecond).String(),
					Message:   "database " + dbPath + " is locked by another process",
				}
			}
			return nil, errors.NewResourceError("lock", "database", dbPath, errors.ErrCanceled)
		case <-timer.C:
		}

		delay *= 2
		if delay > constants.MaxLockRetryInterval {
			delay = constants.MaxLockRetryInterval
		}
	}
}

func open(path string, mode Mode) (*os.File, error) {
	if mode == Shared {
		return os.Open(path)
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE, constants.LockFilePermissions)
}

// Held reports whether an advisory lock is actually held. A shared lock
// on a database without a readable lock file is not.
func (l *Lock) Held() bool {
	return l != nil && l.file != nil
}

// Mode returns the mode the lock was taken in.
func (l *Lock) Mode() Mode {
	return l.mode
}

// Release drops the lock. The lock file itself is left in place so that
// concurrent waiters keep locking the same inode.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unlock(l.file)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return errors.WrapIO("unlock", l.path, err)
}
