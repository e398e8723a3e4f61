// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/deadweight/internal/resource"
)

// failWriter always fails.
type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func newTestJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		nowFunc: func() time.Time { return time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC) },
		idFunc:  func() string { return "00000000-0000-0000-0000-000000000001" },
	}
}

func decodeEnvelope(t *testing.T, data []byte) JSONEnvelope {
	t.Helper()
	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func TestJSONFormatter_Name(t *testing.T) {
	assert.Equal(t, "json", NewJSONFormatter().Name())
}

func TestJSONFormatter_Envelope(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestJSONFormatter().Format(sampleResult(), &buf))

	env := decodeEnvelope(t, buf.Bytes())
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", env.ScanID)
	assert.Equal(t, "/work/app", env.Project)
	assert.Equal(t, "2026-02-07T12:00:00Z", env.GeneratedAt)
	assert.Equal(t, "1.5s", env.Duration)
	assert.Equal(t, []string{"assets/unused.png"}, env.UnreferencedAssets)
	assert.Equal(t, []string{"provider"}, env.UnreferencedDependencies)
	assert.Equal(t, []string{"lib/orphan.dart", "lib/legacy/old.dart"}, env.UnreferencedFiles)

	require.Len(t, env.Detectors, 3)
	assert.Equal(t, "files", env.Detectors[2].Name)
	assert.Equal(t, "files", env.Detectors[2].Category)
	assert.Equal(t, 2, env.Detectors[2].Count)
	assert.Equal(t, "1s", env.Detectors[2].Duration)
	assert.Empty(t, env.Detectors[2].Error)
}

func TestJSONFormatter_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestJSONFormatter().Format(emptyResult(), &buf))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{
		"scan_id", "project", "generated_at", "duration",
		"unreferenced_assets", "unreferenced_dependencies", "unreferenced_dart_files", "detectors",
	} {
		assert.Contains(t, raw, key)
	}
	// Empty categories are arrays, not null.
	assert.Equal(t, []any{}, raw["unreferenced_assets"])
}

func TestJSONFormatter_FailedDetector(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestJSONFormatter().Format(failedDepsResult(), &buf))

	env := decodeEnvelope(t, buf.Bytes())
	assert.Empty(t, env.UnreferencedDependencies)
	assert.Contains(t, env.Detectors[1].Error, "malformed manifest")
}

func TestJSONFormatter_Metrics(t *testing.T) {
	r := emptyResult()
	r.Results[0].Metrics = map[string]int{"candidates": 4}

	var buf bytes.Buffer
	require.NoError(t, newTestJSONFormatter().Format(r, &buf))

	var raw struct {
		Detectors []struct {
			Metrics map[string]int `json:"metrics"`
		} `json:"detectors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, 4, raw.Detectors[0].Metrics["candidates"])
	assert.Nil(t, raw.Detectors[1].Metrics)
}

func TestJSONFormatter_DefaultScanIDIsUUID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(emptyResult(), &buf))

	env := decodeEnvelope(t, buf.Bytes())
	_, err := uuid.Parse(env.ScanID)
	assert.NoError(t, err)
}

func TestJSONFormatter_Compact(t *testing.T) {
	f := newTestJSONFormatter()
	f.Compact = true

	var buf bytes.Buffer
	require.NoError(t, f.Format(sampleResult(), &buf))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), "compact output is a single line")
}

func TestJSONFormatter_PrettyForBuffers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestJSONFormatter().Format(sampleResult(), &buf))
	assert.Contains(t, buf.String(), "\n  \"scan_id\"")
}

func TestJSONFormatter_CompactForRegularFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	file, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, newTestJSONFormatter().Format(sampleResult(), file))
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(data, []byte("\n")))
}

func TestJSONFormatter_WriteError(t *testing.T) {
	err := newTestJSONFormatter().Format(&resource.ScanResult{}, failWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write json")
}
