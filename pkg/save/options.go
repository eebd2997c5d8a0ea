// Package save holds the functional options used when persisting a
// package database.
package save

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/agentstation/pkgdb/pkg/constants"
)

// Format identifies an on-disk encoding.
type Format int

// Format constants.
const (
	// FormatAuto selects the encoding from the file extension.
	FormatAuto Format = iota
	FormatYAML
	FormatJSON
	FormatPlist
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatAuto, FormatYAML, FormatJSON, FormatPlist:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatPlist:
		return "plist"
	}
	return "unknown"
}

// ParseFormat parses a format name. Unknown names yield FormatAuto and false.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, true
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	case "plist", "xml":
		return FormatPlist, true
	}
	return FormatAuto, false
}

// FormatForPath picks the encoding for path by extension, defaulting to YAML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".plist", ".xml":
		return FormatPlist
	default:
		return FormatYAML
	}
}

// Options is the configuration for save.
type Options struct {
	format Format
	mode   fs.FileMode
	sync   bool
	atomic bool
}

// Format returns the configured format. FormatAuto means "by extension".
func (s *Options) Format() Format {
	return s.format
}

// Resolve returns the concrete format to use for path.
func (s *Options) Resolve(path string) Format {
	if s.format == FormatAuto || !s.format.IsValid() {
		return FormatForPath(path)
	}
	return s.format
}

// FileMode returns the permissions given to the written file.
func (s *Options) FileMode() fs.FileMode {
	return s.mode
}

// Sync reports whether file and directory are fsynced after writing.
func (s *Options) Sync() bool {
	return s.sync
}

// Atomic reports whether writes go through a temp file and rename.
func (s *Options) Atomic() bool {
	return s.atomic
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		format: FormatAuto,
		mode:   constants.FilePermissions,
		sync:   true,
		atomic: true,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFormat forces an encoding regardless of extension.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
	}
}

// WithFileMode sets the permissions of the database file.
func WithFileMode(mode fs.FileMode) Option {
	return func(s *Options) {
		s.mode = mode
	}
}

// WithSync toggles fsync of the file and its directory.
func WithSync(enabled bool) Option {
	return func(s *Options) {
		s.sync = enabled
	}
}

// WithAtomic toggles temp-file-and-rename. Disabled, the file is truncated
// and rewritten in place.
func WithAtomic(enabled bool) Option {
	return func(s *Options) {
		s.atomic = enabled
	}
}
