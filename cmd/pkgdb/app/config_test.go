package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgdb/pkg/constants"
	"github.com/agentstation/pkgdb/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)
	t.Setenv(constants.DatabasePathEnv, "")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultDatabasePath, config.DatabasePath)
	assert.Equal(t, "auto", config.DatabaseFormat)
	assert.Equal(t, "text", config.Format)
	assert.Equal(t, constants.DefaultLockTimeout, config.LockTimeout)
	assert.False(t, config.NoLock)
	assert.False(t, config.Chroot)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.LogLevel, "empty triggers the precedence rules in NewLogger")
	assert.Empty(t, config.ConfigFile)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(constants.DatabasePathEnv, "/srv/pkgdb.plist")
	t.Setenv("PKGDB_FORMAT", "json")
	t.Setenv("PKGDB_LOCK_TIMEOUT", "3s")
	t.Setenv("PKGDB_NO_LOCK", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv(constants.ChrootEnv, "")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/pkgdb.plist", config.DatabasePath)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, 3*time.Second, config.LockTimeout)
	assert.True(t, config.NoLock)
	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.Chroot, "presence alone counts")
}

func TestLoadConfigDatabasePathPrecedence(t *testing.T) {
	isolate(t)
	t.Setenv(constants.DatabasePathEnv, "/from/xbps")
	t.Setenv("PKGDB_DB_PATH", "/from/pkgdb")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/from/xbps", config.DatabasePath)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	t.Setenv(constants.DatabasePathEnv, "")

	path := filepath.Join(t.TempDir(), "pkgdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"db_path: /var/db/pkgdb.json\n"+
			"format: table\n"+
			"lock_timeout: 250ms\n"+
			"no_lock: true\n"+
			"log_level: info\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/db/pkgdb.json", config.DatabasePath)
	assert.Equal(t, "table", config.Format)
	assert.Equal(t, 250*time.Millisecond, config.LockTimeout)
	assert.True(t, config.NoLock)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, path, config.ConfigFile)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv(constants.DatabasePathEnv, "/from/env")

	path := filepath.Join(t.TempDir(), "pkgdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /from/file\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", config.DatabasePath)
}

func TestLoadConfigHomeFile(t *testing.T) {
	home := t.TempDir()
	isolate(t)
	t.Setenv("HOME", home)
	t.Setenv(constants.DatabasePathEnv, "")
	require.NoError(t, os.WriteFile(filepath.Join(home, ".pkgdb.yaml"), []byte("format: yaml\n"), 0o644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, filepath.Join(home, ".pkgdb.yaml"), config.ConfigFile)
}

func TestLoadConfigErrors(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	var configErr *errors.ConfigError
	assert.ErrorAs(t, err, &configErr)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("db_path: [unterminated\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorAs(t, err, &configErr)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{
		DatabasePath: "/from/env",
		Format:       "json",
		LockTimeout:  time.Second,
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "/default", "")
	flags.String("format", "text", "")
	flags.Duration("lock-timeout", 0, "")
	flags.Bool("no-lock", false, "")
	flags.BoolP("verbose", "v", false, "")
	require.NoError(t, flags.Parse([]string{"--db", "/from/flag", "--no-lock", "-v"}))

	require.NoError(t, config.UpdateFromFlags(flags))

	assert.Equal(t, "/from/flag", config.DatabasePath)
	assert.Equal(t, "json", config.Format, "unset flags keep the loaded value")
	assert.Equal(t, time.Second, config.LockTimeout)
	assert.True(t, config.NoLock)
	assert.True(t, config.Verbose)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{DatabasePath: "/db", DatabaseFormat: "auto"}, false},
		{"plist", Config{DatabasePath: "/db", DatabaseFormat: "plist"}, false},
		{"empty path", Config{DatabasePath: " "}, true},
		{"unknown format", Config{DatabasePath: "/db", DatabaseFormat: "toml"}, true},
		{"negative timeout", Config{DatabasePath: "/db", LockTimeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
