// TEST TYPE: Unit Test
// PURPOSE: Scan/diff classification over two successive directory snapshots

package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirsync/pkg/types"
)

func TestInitialScanReportsAllAsCreated(t *testing.T) {
	repo, _ := newTestRepo(t, map[string]string{
		"a.txt":         "alpha",
		"sub/b.txt":     "beta",
		"sub/deep/c.md": "gamma",
	})

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)

	assert.Len(t, changes, 3)
	for _, rec := range changes {
		assert.Equal(t, types.CommandCreate, rec.Command)
		assert.NotEmpty(t, rec.Hash)
	}
	checkInvariants(t, repo)
}

func TestScanIsIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t, map[string]string{"a.txt": "alpha", "b.txt": "beta"})

	_, err := repo.UpdateStatus()
	require.NoError(t, err)

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	assert.Empty(t, changes, "a second scan with no filesystem change must report nothing")
	checkInvariants(t, repo)
}

func TestCreateVersusCopyDisambiguation(t *testing.T) {
	// Two files with identical bytes exist before the first scan.
	repo, fsys := newTestRepo(t, map[string]string{
		"a.txt": "same content",
		"b.txt": "same content",
	})

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	assert.Equal(t, []types.Command{types.CommandCreate, types.CommandCreate}, commandsOf(changes),
		"pre-existing duplicates must both read as creations on the initial scan")

	// The same content appearing after the initial scan is a copy.
	seedFiles(t, fsys, repo.Root(), map[string]string{"c.txt": "same content"})

	changes, err = repo.UpdateStatus()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	rec, ok := findRecord(changes, "c.txt")
	require.True(t, ok, "the new duplicate must be reported")
	assert.Equal(t, types.CommandCopy, rec.Command)
	checkInvariants(t, repo)
}

func TestMoveDetection(t *testing.T) {
	repo, fsys := newTestRepo(t, map[string]string{"x.txt": "payload"})
	_, err := repo.UpdateStatus()
	require.NoError(t, err)

	// Rename on disk between scans.
	require.NoError(t, fsys.Rename(filepath.Join(repo.Root(), "x.txt"), filepath.Join(repo.Root(), "y.txt")))

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	require.Len(t, changes, 1, "a rename must yield exactly one record, got %v", changes)
	assert.Equal(t, types.CommandMove, changes[0].Command)
	assert.Equal(t, "y.txt", changes[0].Path)

	// The old path is gone from the index, the new one present.
	_, err = repo.FileAtPath("x.txt")
	assert.Error(t, err)
	_, err = repo.FileAtPath("y.txt")
	assert.NoError(t, err)
	checkInvariants(t, repo)
}

func TestMoveIntoSubdirectory(t *testing.T) {
	repo, fsys := newTestRepo(t, map[string]string{"x.txt": "payload"})
	_, err := repo.UpdateStatus()
	require.NoError(t, err)

	dest := filepath.Join(repo.Root(), "nested", "dir", "y.txt")
	require.NoError(t, fsys.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, fsys.Rename(filepath.Join(repo.Root(), "x.txt"), dest))

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, types.CommandMove, changes[0].Command)
	assert.Equal(t, filepath.Join("nested", "dir", "y.txt"), changes[0].Path)
	checkInvariants(t, repo)
}

func TestModifyDetection(t *testing.T) {
	repo, fsys := newTestRepo(t, map[string]string{"a.txt": "before"})
	_, err := repo.UpdateStatus()
	require.NoError(t, err)

	seedFiles(t, fsys, repo.Root(), map[string]string{"a.txt": "after"})

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, types.CommandModify, changes[0].Command)
	assert.Equal(t, "a.txt", changes[0].Path)

	handle, err := repo.FileAtPath("a.txt")
	require.NoError(t, err)
	assert.Equal(t, changes[0].Hash, handle.Hash(), "index must carry the recomputed hash")
	checkInvariants(t, repo)
}

func TestModifyIntoExistingContentReadsAsCopy(t *testing.T) {
	repo, fsys := newTestRepo(t, map[string]string{
		"a.txt": "unique",
		"b.txt": "shared",
	})
	_, err := repo.UpdateStatus()
	require.NoError(t, err)

	// a.txt now coincides with b.txt's content.
	seedFiles(t, fsys, repo.Root(), map[string]string{"a.txt": "shared"})

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, types.CommandCopy, changes[0].Command)
	assert.Equal(t, "a.txt", changes[0].Path)

	handles, err := repo.FilesWithHash(changes[0].Hash)
	require.NoError(t, err)
	assert.Len(t, handles, 2, "both files now share one bucket")
	checkInvariants(t, repo)
}

func TestDeleteDetection(t *testing.T) {
	repo, fsys := newTestRepo(t, map[string]string{"a.txt": "alpha", "b.txt": "beta"})
	_, err := repo.UpdateStatus()
	require.NoError(t, err)

	require.NoError(t, fsys.Remove(filepath.Join(repo.Root(), "a.txt")))

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, types.CommandDelete, changes[0].Command)
	assert.Equal(t, "a.txt", changes[0].Path)

	_, err = repo.FileAtPath("a.txt")
	assert.Error(t, err)
	checkInvariants(t, repo)
}

func TestDeleteOfOneDuplicateKeepsBucket(t *testing.T) {
	repo, fsys := newTestRepo(t, map[string]string{
		"a.txt": "same",
		"b.txt": "same",
	})
	_, err := repo.UpdateStatus()
	require.NoError(t, err)

	require.NoError(t, fsys.Remove(filepath.Join(repo.Root(), "a.txt")))

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, types.CommandDelete, changes[0].Command)

	handles, err := repo.FilesWithHash(changes[0].Hash)
	require.NoError(t, err)
	require.Len(t, handles, 1)
	assert.Equal(t, "b.txt", handles[0].RelPath())
	checkInvariants(t, repo)
}

func TestDeletionsAreEmittedLast(t *testing.T) {
	repo, fsys := newTestRepo(t, map[string]string{"old.txt": "going away"})
	_, err := repo.UpdateStatus()
	require.NoError(t, err)

	require.NoError(t, fsys.Remove(filepath.Join(repo.Root(), "old.txt")))
	seedFiles(t, fsys, repo.Root(), map[string]string{"new.txt": "arriving"})

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, types.CommandCreate, changes[0].Command)
	assert.Equal(t, types.CommandDelete, changes[1].Command)
	checkInvariants(t, repo)
}

func TestChangeRecordStringForm(t *testing.T) {
	repo, _ := newTestRepo(t, map[string]string{"a.txt": "alpha"})
	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	require.Len(t, changes, 1)

	rec := changes[0]
	assert.Equal(t, "create "+string(rec.Hash)+" -> a.txt", rec.String())
}

func TestScanAfterPrimitiveMutations(t *testing.T) {
	// Primitives keep the indices current, so a scan right after them is a
	// no-op.
	repo, _ := newTestRepo(t, map[string]string{"seed.txt": "seed"})
	_, err := repo.UpdateStatus()
	require.NoError(t, err)

	require.NoError(t, repo.Create("made.txt", []byte("made")))
	require.NoError(t, repo.Modify("seed.txt", []byte("changed")))

	made, err := repo.FileAtPath("made.txt")
	require.NoError(t, err)
	require.NoError(t, repo.Copy(made.Hash(), "copy-of-made.txt"))
	require.NoError(t, repo.Delete("seed.txt"))

	changes, err := repo.UpdateStatus()
	require.NoError(t, err)
	assert.Empty(t, changes)
	checkInvariants(t, repo)
}
