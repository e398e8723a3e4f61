// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.OutputFormat)
	assert.Nil(t, cfg.Detectors)
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	content := `
output_format: json
source_root: app/lib
include_dev_dependencies: true
detectors:
  files:
    error_mode: skip
    exclude_patterns:
      - "**/*.g.dart"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "app/lib", cfg.SourceRoot)
	require.NotNil(t, cfg.IncludeDevDependencies)
	assert.True(t, *cfg.IncludeDevDependencies)
	require.Contains(t, cfg.Detectors, "files")
	assert.Equal(t, "skip", cfg.Detectors["files"].ErrorMode)
	assert.Equal(t, []string{"**/*.g.dart"}, cfg.Detectors["files"].ExcludePatterns)
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	content := `
output_format = "markdown"
assets_root = "res"
max_files = 2000
unknown_key = 1

[detectors.dependencies]
enabled = false
error_mode = "fail"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, TOMLFileName), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, "res", cfg.AssetsRoot)
	assert.Equal(t, 2000, cfg.MaxFiles)
	dc := cfg.Detectors["dependencies"]
	require.NotNil(t, dc.Enabled)
	assert.False(t, *dc.Enabled)
	assert.Equal(t, "fail", dc.ErrorMode)
}

func TestLoad_YAMLPreferredOverTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("output_format: json\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TOMLFileName), []byte(`output_format = "markdown"`), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{{invalid yaml"), 0o600))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TOMLFileName), []byte("output_format = "), 0o600))

	cfg, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), TOMLFileName)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(""), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.OutputFormat)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadRaw_MissingAndWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	data, err := LoadRaw(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	data["source_root"] = "src"
	require.NoError(t, WriteFile(path, data))

	again, err := LoadRaw(path)
	require.NoError(t, err)
	assert.Equal(t, "src", again["source_root"])
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &Config{OutputFormat: "text", SourceRoot: "lib"}))
	assert.Contains(t, buf.String(), "output_format: text")
	assert.Contains(t, buf.String(), "source_root: lib")
	assert.NotContains(t, buf.String(), "detectors")
}
