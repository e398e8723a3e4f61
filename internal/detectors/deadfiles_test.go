// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package detectors

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/deadweight/internal/resource"
	"github.com/davetashner/deadweight/internal/testable"
)

func TestDeadFileDetector_Name(t *testing.T) {
	d := &DeadFileDetector{}
	assert.Equal(t, "files", d.Name())
	assert.Equal(t, resource.CategoryFiles, d.Category())
}

func TestDeadFileDetector_Orphan(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"lib/main.dart":        "import 'home_screen.dart';\nvoid main() {}",
		"lib/home_screen.dart": "class HomeScreen {}",
		"lib/orphan.dart":      "class Orphan {}",
	})

	d := &DeadFileDetector{}
	got, err := d.Detect(context.Background(), cfg, resource.DetectorOpts{})
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/orphan.dart"}, paths(got))
	assert.Equal(t, "orphan.dart", got[0].Key)

	m := d.Metrics().(*Metrics)
	assert.Equal(t, 2, m.Candidates, "main.dart is not a candidate")
	assert.Equal(t, 3, m.SourceFiles)
}

func TestDeadFileDetector_EntryPointNeverReported(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"lib/main.dart":     "void main() {}",
		"lib/src/main.dart": "// nested entry point name",
	})

	got, err := (&DeadFileDetector{}).Detect(context.Background(), cfg, resource.DetectorOpts{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeadFileDetector_NoSelfReference(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"lib/main.dart":   "void main() {}",
		"lib/narcis.dart": "// narcis.dart mentions only itself",
	})

	got, err := (&DeadFileDetector{}).Detect(context.Background(), cfg, resource.DetectorOpts{})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/narcis.dart"}, paths(got))
}

func TestDeadFileDetector_SameBasenameIndependent(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"lib/main.dart":              "import 'feature_a/widgets.dart';",
		"lib/feature_a/widgets.dart": "class A {}",
		"lib/feature_b/widgets.dart": "class B {}",
	})

	got, err := (&DeadFileDetector{}).Detect(context.Background(), cfg, resource.DetectorOpts{})
	require.NoError(t, err)

	// main.dart mentions "widgets.dart", which is the base name of both.
	assert.Empty(t, got)
}

func TestDeadFileDetector_SameBasenameMutual(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"lib/main.dart":              "void main() {}",
		"lib/feature_a/widgets.dart": "// see widgets.dart in feature_b",
		"lib/feature_b/widgets.dart": "class B {}",
	})

	got, err := (&DeadFileDetector{}).Detect(context.Background(), cfg, resource.DetectorOpts{})
	require.NoError(t, err)

	// feature_a mentions the shared name, which references feature_b but
	// not itself.
	assert.Equal(t, []string{"lib/feature_a/widgets.dart"}, paths(got))
}

func TestDeadFileDetector_UnreadableFile(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"lib/main.dart":   "void main() {}",
		"lib/broken.dart": "import 'helper.dart';",
		"lib/helper.dart": "",
	})

	orig := FS
	t.Cleanup(func() { FS = orig })
	FS = &testable.MockFileSystem{
		ReadErrors: map[string]error{"broken.dart": fs.ErrPermission},
	}

	d := &DeadFileDetector{}
	got, err := d.Detect(context.Background(), cfg, resource.DetectorOpts{})
	require.NoError(t, err)

	// broken.dart contributes no references, so helper.dart is unreferenced.
	assert.Equal(t, []string{"lib/broken.dart", "lib/helper.dart"}, paths(got))
	assert.Equal(t, 1, d.Metrics().(*Metrics).ReadFailures)
}

func TestDeadFileDetector_OnlySourceExtension(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"lib/main.dart":    "void main() {}",
		"lib/notes.txt":    "",
		"test/a_test.dart": "",
	})

	got, err := (&DeadFileDetector{}).Detect(context.Background(), cfg, resource.DetectorOpts{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeadFileDetector_Cancelled(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"lib/main.dart": "",
		"lib/a.dart":    "",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&DeadFileDetector{}).Detect(ctx, cfg, resource.DetectorOpts{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeadFileDetector_GitignoredFiles(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		".gitignore":              "lib/generated/\n",
		"lib/main.dart":           "void main() {}",
		"lib/strings.dart":        "class Strings {}",
		"lib/generated/l10n.dart": "import '../strings.dart';",
	})

	got, err := (&DeadFileDetector{}).Detect(context.Background(), cfg, resource.DetectorOpts{})
	require.NoError(t, err)

	// l10n.dart is ignored, so it is never reported, but its import of
	// strings.dart still counts.
	assert.Empty(t, got)
}
