package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/pkgdb/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag or LOG_LEVEL (explicit always wins)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for error)
//  4. Default (warn)
//
// The default stays at warn so nothing but command output and status
// lines reaches the terminal in normal use.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	logConfig := &logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		AddCaller: level == "debug" || level == "trace",
	}

	return logging.NewLoggerFromConfig(logConfig)
}

// determineLogLevel determines the log level using the precedence rules.
func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		validated := validateLogLevel(config.LogLevel)
		if validated != strings.ToLower(config.LogLevel) {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, validated)
		}
		return validated
	}

	if config.Verbose && config.Quiet {
		// quiet is the more restrictive
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "error"
	}

	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "error"
	}

	return "warn"
}

// validateLogLevel returns level if it is known, otherwise "warn".
func validateLogLevel(level string) string {
	validLevels := map[string]bool{
		"trace":    true,
		"debug":    true,
		"info":     true,
		"warn":     true,
		"error":    true,
		"disabled": true,
	}

	level = strings.ToLower(level)
	if validLevels[level] {
		return level
	}

	return "warn"
}
