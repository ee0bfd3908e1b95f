package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo initializes a Loam repository in a fresh temp dir and returns its
// absolute root. Menu documents written below the root are picked up by the loam
// menu source.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	root, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	repo, err := loam.Init(root, opts...)
	require.NoError(t, err, "init menu repository")

	return root, repo
}

// WriteMenu writes a menu document below root, creating parent directories.
func WriteMenu(t *testing.T, root, name, content string) string {
	t.Helper()

	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
