package detectors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davetashner/deadweight/internal/resource"
)

// writeProject creates a project tree in a temp directory and returns a
// ScanConfig pointing at it with the default Flutter layout.
func writeProject(t *testing.T, files map[string]string) resource.ScanConfig {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return resource.ScanConfig{
		ProjectRoot: dir,
		Layout:      resource.DefaultLayout(),
		Gitignore:   true,
	}
}

func keys(cands []resource.Candidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, c.Key)
	}
	return out
}

func paths(cands []resource.Candidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, c.Path)
	}
	return out
}
