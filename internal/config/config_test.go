// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"os"
	"path/filepath"
	"testing"

	serrors "seedkit/cli/internal/errors"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"SEEDKIT_LOG_LEVEL", "SEEDKIT_LOG_FORMAT", "SEEDKIT_DB_DSN", "SEEDKIT_ADMIN_EMAIL", "SEEDKIT_ADMIN_PASSWORD", "SEEDKIT_DB_MIGRATE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return dir
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)

	c, err := NewLoader("").WithEnvFile("").Load()
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "admin@seedkit.local", c.Admin.Email)
	assert.Empty(t, c.DB.DSN)
	assert.False(t, c.DB.Migrate)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "log_level": "debug",
  "db": {"dsn": "sqlite://dev.db", "migrate": true},
  "counts": {"users": 7, "attempts": 0}
}`), 0o600))
	t.Setenv("SEEDKIT_LOG_FORMAT", "json")

	c, err := NewLoader(path).WithEnvFile("").Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "sqlite://dev.db", c.DB.DSN)
	assert.True(t, c.DB.Migrate)
	assert.Equal(t, map[string]int{"users": 7, "attempts": 0}, c.Counts)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SEEDKIT_ADMIN_EMAIL=ops@seedkit.test\n"), 0o600))

	c, err := NewLoader("").WithEnvFile(envFile).Load()
	require.NoError(t, err)
	assert.Equal(t, "ops@seedkit.test", c.Admin.Email)
}

func TestFlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SEEDKIT_LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	require.NoError(t, fs.Parse([]string{"--log-level=error"}))

	l := NewLoader("").WithEnvFile("")
	require.NoError(t, l.BindFlag("log_level", fs.Lookup("log-level")))
	c, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "error", c.LogLevel)

	assert.Error(t, l.BindFlag("nope", fs.Lookup("missing")))
}

func TestValidateReportsEveryViolation(t *testing.T) {
	c := Defaults()
	c.LogLevel = "loud"
	c.Admin.Email = "not-an-email"
	c.Counts = map[string]int{"users": -1}

	err := Validate(c)
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.ConfigInvalid))
	assert.Contains(t, err.Error(), `log_level must be one of`)
	assert.Contains(t, err.Error(), "admin.email is not a valid email address")
	assert.Contains(t, err.Error(), "must be >= 0")

	assert.NoError(t, Validate(Defaults()))
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log_format": "xml"}`), 0o600))

	_, err := NewLoader(path).WithEnvFile("").Load()
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.ConfigInvalid))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	c := Defaults()
	c.Counts = map[string]int{"lessons": 12}
	c.DB.Migrate = true
	require.NoError(t, Save("", c))

	path := filepath.Join(dir, "seedkit", "config.json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := NewLoader("").WithEnvFile("").Load()
	require.NoError(t, err)
	assert.Equal(t, 12, got.Counts["lessons"])
	assert.True(t, got.DB.Migrate)
}
