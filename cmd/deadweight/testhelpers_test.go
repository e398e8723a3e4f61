package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/deadweight/internal/testable"
)

// newTestCmd redirects the root command's output to fresh buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	// We reuse the global rootCmd because every subcommand is wired to it via init().
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetScanFlags resets all package-level scan flags to their default values.
// This must be called before each test that invokes the scan command to avoid
// contamination from previous tests.
func resetScanFlags() {
	scanCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	})
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	})

	// pflag's StringSlice.Set("[]") appends a literal "[]" entry rather than
	// clearing, so slices are reset after the VisitAll loop.
	scanAssetsExclude = nil
	scanReserved = nil
	scanExclude = nil
}

// withMockFS swaps cmdFS with the given mock and restores it on test cleanup.
func withMockFS(t *testing.T, mock *testable.MockFileSystem) {
	t.Helper()
	orig := cmdFS
	cmdFS = mock
	t.Cleanup(func() { cmdFS = orig })
}

// isolateGlobalConfig points the global config at an empty directory so a
// developer's own ~/.config/deadweight does not leak into tests.
func isolateGlobalConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// flutterProject creates a small Flutter project in t.TempDir(). It has one
// unused asset (assets/images/unused.png), one unused dependency (provider)
// and one dead source file (lib/orphan.dart). Returns the project root with
// symlinks resolved.
func flutterProject(t *testing.T) string {
	t.Helper()
	isolateGlobalConfig(t)

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}

	writeTestFile(t, dir, "pubspec.yaml", `name: demo
dependencies:
  flutter:
    sdk: flutter
  http: ^1.1.0
  provider: ^6.0.5
dev_dependencies:
  flutter_test:
    sdk: flutter
  mockito: ^5.4.0
`)
	writeTestFile(t, dir, "lib/main.dart", `import 'package:http/http.dart' as http;
import 'screens/home_screen.dart';

void main() {
  Image.asset('assets/images/logo.png');
}
`)
	writeTestFile(t, dir, "lib/screens/home_screen.dart", "class HomeScreen {}\n")
	writeTestFile(t, dir, "lib/orphan.dart", "class Orphan {}\n")
	writeTestFile(t, dir, "assets/images/logo.png", "png")
	writeTestFile(t, dir, "assets/images/unused.png", "png")
	writeTestFile(t, dir, "assets/fonts/Roboto.ttf", "ttf")
	return dir
}

// writeTestFile writes content to dir/name, creating parent directories.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", parent, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
