package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrInitCreatesDefaultConfig(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv("CCFILES_THEME", "")
	t.Setenv("CCFILES_LOG_FILE", "")

	cfg, err := LoadOrInit()
	require.NoError(t, err)

	assert.False(t, cfg.IncludeHidden)
	assert.Empty(t, cfg.Exclude)
	assert.Equal(t, "auto", cfg.Theme)
	assert.Empty(t, cfg.LogFile)

	path := filepath.Join(cfgHome, "ccfiles", "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: auto")

	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestLoadOrInitKeepsExistingConfig(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv("CCFILES_THEME", "")
	t.Setenv("CCFILES_LOG_FILE", "")

	dir := filepath.Join(cfgHome, "ccfiles")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	body := "include_hidden: true\nexclude:\n  - \"scratch-*\"\ntheme: light\nlog_file: /tmp/ccfiles.log\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))

	cfg, err := LoadOrInit()
	require.NoError(t, err)
	assert.True(t, cfg.IncludeHidden)
	assert.Equal(t, []string{"scratch-*"}, cfg.Exclude)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "/tmp/ccfiles.log", cfg.LogFile)
}

func TestLoadFrom(t *testing.T) {
	t.Setenv("CCFILES_THEME", "")
	t.Setenv("CCFILES_LOG_FILE", "")

	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("theme: ascii\n"), 0o644))

		cfg, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "ascii", cfg.Theme)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed\n"), 0o644))

		_, err := LoadFrom(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\nlog_file: /var/log/a.log\n"), 0o644))

	t.Setenv("CCFILES_THEME", "ascii")
	t.Setenv("CCFILES_LOG_FILE", "/var/log/b.log")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "ascii", cfg.Theme)
	assert.Equal(t, "/var/log/b.log", cfg.LogFile)
}

func TestEnsureDefaultsFillsTheme(t *testing.T) {
	t.Setenv("CCFILES_THEME", "")
	t.Setenv("CCFILES_LOG_FILE", "")

	cfg := &Config{}
	cfg.ensureDefaults()
	assert.Equal(t, "auto", cfg.Theme)
}
