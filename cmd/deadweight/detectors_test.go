package main

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/deadweight/internal/config"
	"github.com/davetashner/deadweight/internal/detector"
)

func TestDetectorsSubcommands_AreRegistered(t *testing.T) {
	subs := map[string]bool{}
	for _, cmd := range detectorsCmd.Commands() {
		subs[cmd.Name()] = true
	}
	assert.True(t, subs["list"], "list subcommand should be registered")
	assert.True(t, subs["info"], "info subcommand should be registered")
}

func TestKnownDetectors_CoverRegistry(t *testing.T) {
	for _, name := range detector.List() {
		_, ok := knownDetectors[name]
		assert.True(t, ok, "detector %q has no metadata", name)
	}
}

func TestDetectorsList_ShowsAllDetectors(t *testing.T) {
	isolateGlobalConfig(t)
	chdir(t, t.TempDir())

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"detectors", "list", "--no-color"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	for _, name := range detector.List() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "dependencies")
	assert.NotContains(t, out, "disabled")
}

func TestDetectorsList_ShowsDisabled(t *testing.T) {
	isolateGlobalConfig(t)
	dir := t.TempDir()
	writeTestFile(t, dir, config.FileName, "detectors:\n  files:\n    enabled: false\n")
	chdir(t, dir)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"detectors", "list", "--no-color"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "disabled")
}

func TestDetectorsList_RejectsArgs(t *testing.T) {
	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"detectors", "list", "extra"})
	assert.Error(t, cmd.Execute())
}

func TestDetectorsInfo_WithConfig(t *testing.T) {
	isolateGlobalConfig(t)
	dir := t.TempDir()
	writeTestFile(t, dir, config.FileName, `source_root: src
detectors:
  dependencies:
    error_mode: fail
    exclude_patterns: ["src/gen/**"]
`)
	chdir(t, dir)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"detectors", "info", "dependencies", "--no-color"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Detector: dependencies")
	assert.Contains(t, out, "Status: enabled")
	assert.Contains(t, out, "package names from the manifest")
	assert.Regexp(t, `source_root:\s+src`, out)
	assert.Regexp(t, `manifest:\s+pubspec.yaml`, out)
	assert.Regexp(t, `error_mode:\s+fail`, out)
	assert.Regexp(t, `exclude_patterns:\s+src/gen/\*\*`, out)
}

func TestDetectorsInfo_UnknownDetector(t *testing.T) {
	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"detectors", "info", "images"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown detector "images"`)
	assert.Contains(t, err.Error(), "assets, dependencies, files")
}

func TestFormatFieldValue(t *testing.T) {
	on := true
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil pointer", (*bool)(nil), "(default)"},
		{"set pointer", &on, "true"},
		{"nil slice", []string(nil), "(none)"},
		{"slice", []string{"a", "b"}, "a, b"},
		{"zero string", "", "(default)"},
		{"string", "warn", "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFieldValue(reflect.ValueOf(tt.v)))
		})
	}
}
