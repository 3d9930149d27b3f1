// Package testutil provides shared helpers for dirsync tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirsync/pkg/filesystem"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// NewMemFS returns a types.FS backed by an in-memory afero filesystem.
func NewMemFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// SeedTree writes the given relative-path -> content files under root,
// creating parent directories as needed. Paths use forward slashes.
func SeedTree(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, fsys.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, fsys.WriteFile(abs, []byte(content), 0644))
	}
}

// ReadTree returns every regular file under root as a relative-path ->
// content map, for comparing whole trees.
func ReadTree(t *testing.T, fsys types.FS, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	collectTree(t, fsys, root, root, files)
	return files
}

func collectTree(t *testing.T, fsys types.FS, root, dir string, files map[string]string) {
	t.Helper()
	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			collectTree(t, fsys, root, full, files)
			continue
		}
		rel, err := filepath.Rel(root, full)
		require.NoError(t, err)
		content, err := fsys.ReadFile(full)
		require.NoError(t, err)
		files[filepath.ToSlash(rel)] = string(content)
	}
}
