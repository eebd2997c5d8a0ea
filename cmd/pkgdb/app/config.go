package app

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/pkgdb/internal/cmd/notify"
	"github.com/agentstation/pkgdb/pkg/constants"
	pkgerrors "github.com/agentstation/pkgdb/pkg/errors"
	"github.com/agentstation/pkgdb/pkg/save"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	Format  string

	// Config file
	ConfigFile string

	// Database configuration
	DatabasePath   string
	DatabaseFormat string
	LockTimeout    time.Duration
	NoLock         bool

	// Chroot is set when the chroot marker variable is present.
	Chroot bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or ~/.pkgdb.yaml, or ./.pkgdb.yaml)
// 5. Defaults
//
// A missing default config file is not an error; a missing explicit one is.
func LoadConfig(configFile string) (*Config, error) {
	// .env files never override variables already in the environment
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("pkgdb")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, pkgerrors.NewConfigError("environment", "failed to bind variables", err)
	}

	v.SetDefault("db_path", constants.DefaultDatabasePath)
	v.SetDefault("db_format", save.FormatAuto.String())
	v.SetDefault("format", "text")
	v.SetDefault("lock_timeout", constants.DefaultLockTimeout)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, pkgerrors.NewConfigError("config file", err.Error(), err)
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DatabasePath:   v.GetString("db_path"),
		DatabaseFormat: v.GetString("db_format"),
		LockTimeout:    v.GetDuration("lock_timeout"),
		NoLock:         v.GetBool("no_lock"),

		Chroot: notify.InChroot(),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// UpdateFromFlags applies the flags the user set explicitly. Unset flags
// keep the values from the environment and config file.
func (c *Config) UpdateFromFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "db":
			c.DatabasePath = f.Value.String()
		case "db-format":
			c.DatabaseFormat = f.Value.String()
		case "format":
			c.Format = f.Value.String()
		case "lock-timeout":
			c.LockTimeout, err = flags.GetDuration(f.Name)
		case "no-lock":
			c.NoLock, err = flags.GetBool(f.Name)
		case "config":
			c.ConfigFile = f.Value.String()
		case "log-level":
			c.LogLevel = f.Value.String()
		case "verbose":
			c.Verbose, err = flags.GetBool(f.Name)
		case "quiet":
			c.Quiet, err = flags.GetBool(f.Name)
		}
	})
	return err
}

// Validate checks option values that are only known at run time.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return pkgerrors.NewValidationError("db_path", c.DatabasePath, "database path cannot be empty")
	}
	if _, ok := save.ParseFormat(c.DatabaseFormat); !ok {
		return pkgerrors.NewValidationError("db_format", c.DatabaseFormat, "must be one of: auto, yaml, json, plist")
	}
	if c.LockTimeout < 0 {
		return pkgerrors.NewValidationError("lock_timeout", c.LockTimeout, "cannot be negative")
	}
	return nil
}

// bindEnv binds keys whose variables do not follow the PKGDB_ prefix.
// Earlier names take precedence.
func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"db_path":    {constants.DatabasePathEnv, "PKGDB_DB_PATH"},
		"log_level":  {"PKGDB_LOG_LEVEL", "LOG_LEVEL"},
		"log_format": {"PKGDB_LOG_FORMAT", "LOG_FORMAT"},
		"log_output": {"PKGDB_LOG_OUTPUT", "LOG_OUTPUT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// godotenv.Load never overrides a variable that is already set, so
	// .env.local goes first to take precedence over .env.
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}
