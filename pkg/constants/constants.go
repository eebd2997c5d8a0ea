// Package constants provides shared constants used throughout the pkgdb codebase.
// This includes paths, environment variable names, document keys, file
// permissions and timeouts that should be consistent across the application.
package constants

import "time"

// Path constants
const (
	// DefaultDatabasePath is the database file used when no override is configured
	DefaultDatabasePath = "/var/xbps/.xbps-pkgdb.plist"

	// LockFileSuffix is appended to the database path to name its lock file
	LockFileSuffix = ".lock"

	// TempFilePattern is the os.CreateTemp pattern for staged database writes
	TempFilePattern = ".pkgdb-*.tmp"

	// ConfigFileName is the base name of the optional config file (without extension)
	ConfigFileName = ".pkgdb"
)

// Environment variable constants
const (
	// DatabasePathEnv overrides the database file path
	DatabasePathEnv = "XBPS_PKGDB_FPATH"

	// ChrootEnv marks that operations run inside a chroot; only its presence matters
	ChrootEnv = "in_chroot"
)

// Document key constants describe the persisted database shape.
const (
	// PackagesKey is the single top-level key holding the ordered package list
	PackagesKey = "packages_installed"

	// NameKey is the per-record package name field
	NameKey = "pkgname"

	// VersionKey is the per-record version field
	VersionKey = "version"

	// DescriptionKey is the per-record short description field
	DescriptionKey = "short_desc"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// LockFilePermissions is the permission for lock files (rw-r--r--)
	LockFilePermissions = 0644
)

// Timeout constants
const (
	// DefaultLockTimeout bounds how long a command waits for the database lock
	DefaultLockTimeout = 10 * time.Second

	// LockRetryInterval is the initial delay between lock attempts
	LockRetryInterval = 10 * time.Millisecond

	// MaxLockRetryInterval caps the delay between lock attempts
	MaxLockRetryInterval = 250 * time.Millisecond

	// CompletionTimeout bounds the database read behind shell completion
	CompletionTimeout = 2 * time.Second
)

// Output prefix constants for status messages.
const (
	// ChrootPrefix is prepended to status messages when running inside a chroot
	ChrootPrefix = "[chroot] "

	// StatusPrefix starts every status line
	StatusPrefix = "=> "

	// NoticePrefix starts notices about the database itself
	NoticePrefix = "==> "
)
