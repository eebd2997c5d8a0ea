// Package alerts provides a structured system for status notifications.
package alerts

import (
	"fmt"

	"github.com/agentstation/pkgdb/pkg/constants"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a potential issue or important notice.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
	// LevelNotice announces something about the database itself.
	LevelNotice
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelNotice:
		return "notice"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Prefix returns the marker that starts a plain-text alert line.
func (l Level) Prefix() string {
	switch l {
	case LevelError:
		return constants.StatusPrefix + "ERROR: "
	case LevelWarning:
		return constants.StatusPrefix + "WARNING: "
	case LevelNotice:
		return constants.NoticePrefix
	default:
		return constants.StatusPrefix
	}
}
