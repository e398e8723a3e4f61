package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	dir := GlobalConfigDir()
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "deadweight"), dir)
}

func TestGlobalConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, filepath.Join("/custom/config", "deadweight"), GlobalConfigDir())
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, filepath.Join("/custom/config", "deadweight", "config.yaml"), GlobalConfigPath())
}

func TestLoadGlobal_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "", cfg.OutputFormat)
}

func writeGlobal(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgDir := filepath.Join(dir, "deadweight")
	require.NoError(t, os.MkdirAll(cfgDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0o600))
}

func TestLoadGlobal_Valid(t *testing.T) {
	writeGlobal(t, "output_format: json\nmax_files: 300\n")

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 300, cfg.MaxFiles)
}

func TestLoadGlobal_Invalid(t *testing.T) {
	writeGlobal(t, "{{bad")

	_, err := LoadGlobal()
	assert.Error(t, err)
}

func TestLoadLayered_ProjectWins(t *testing.T) {
	writeGlobal(t, "output_format: json\nsource_root: src\n")

	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, FileName), []byte("output_format: markdown\n"), 0o600))

	cfg, err := LoadLayered(project)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, "src", cfg.SourceRoot, "unset project keys fall through to global")
}
