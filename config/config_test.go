package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config", "exek", "database.json"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(dir, "state", "exek", "exek.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultTerminals, cfg.Terminals)
	assert.True(t, cfg.HistoryPaths)
	assert.Empty(t, cfg.ApplicationDirs)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "exek.toml")
	body := `
database_path = "/tmp/exek/usage.json"
log_level = "debug"
application_dirs = ["/opt/apps", "~/apps"]
terminals = ["foot"]
history_paths = false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/exek/usage.json", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"/opt/apps", filepath.Join(xdg.Home, "apps")}, cfg.ApplicationDirs)
	assert.Equal(t, []string{"foot"}, cfg.Terminals)
	assert.False(t, cfg.HistoryPaths)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("EXEK_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
