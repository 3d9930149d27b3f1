package repository

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirsync/pkg/filesystem"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// newTestRepo builds a repository over an in-memory filesystem seeded with
// the given relative-path -> content files.
func newTestRepo(t *testing.T, files map[string]string) (*Local, types.FS) {
	t.Helper()

	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	root := "/repo"
	require.NoError(t, fsys.MkdirAll(root, 0755))
	seedFiles(t, fsys, root, files)

	repo, err := NewLocal(root, Options{FS: fsys})
	require.NoError(t, err)
	return repo, fsys
}

func seedFiles(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, fsys.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, fsys.WriteFile(abs, []byte(content), 0644))
	}
}

// checkInvariants asserts the two indices are mutually consistent: every
// tracked file appears exactly once in the bucket of its current hash, no
// bucket is empty, and no bucket entry is missing from the path index.
func checkInvariants(t *testing.T, r *Local) {
	t.Helper()

	bucketTotal := 0
	for hash, bucket := range r.byHash {
		if len(bucket) == 0 {
			t.Errorf("empty bucket left behind for hash %s", hash)
		}
		bucketTotal += len(bucket)
		for _, f := range bucket {
			if f.lastHash != hash {
				t.Errorf("file %q sits in bucket %s but has hash %s", f.relPath, hash, f.lastHash)
			}
			if r.byPath[f.relPath] != f {
				t.Errorf("bucket entry %q is not the file tracked at that path", f.relPath)
			}
		}
	}

	if bucketTotal != len(r.byPath) {
		t.Errorf("index sizes diverged: byHash holds %d entries, byPath %d", bucketTotal, len(r.byPath))
	}

	for rel, f := range r.byPath {
		occurrences := 0
		for _, g := range r.byHash[f.lastHash] {
			if g == f {
				occurrences++
			}
		}
		if occurrences != 1 {
			t.Errorf("file %q appears %d times in its bucket, want exactly once", rel, occurrences)
		}
	}
}

// commandsOf projects a change log onto its commands, in order.
func commandsOf(records []types.ChangeRecord) []types.Command {
	commands := make([]types.Command, len(records))
	for i, rec := range records {
		commands[i] = rec.Command
	}
	return commands
}

// findRecord returns the first record for the given relative path.
func findRecord(records []types.ChangeRecord, path string) (types.ChangeRecord, bool) {
	for _, rec := range records {
		if rec.Path == path {
			return rec, true
		}
	}
	return types.ChangeRecord{}, false
}
