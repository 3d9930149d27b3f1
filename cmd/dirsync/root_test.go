// TEST TYPE: Integration Test (real filesystem)
// PURPOSE: CLI wiring of the scan, sync and version commands

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns captured output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// tempLogfile keeps test logs out of the user's state directory.
func tempLogfile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "dirsync.log")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dirsync version")
}

func TestNoCommandIsAnError(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestScanCmd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("beta"), 0644))

	out, err := execute(t, "scan", dir, "--logfile", tempLogfile(t))
	require.NoError(t, err)

	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "sub/b.txt")
	assert.Contains(t, out, "create")
}

func TestScanCmdRequiresDir(t *testing.T) {
	_, err := execute(t, "scan")
	require.Error(t, err)
}

func TestSyncCmd(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "mirror")
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha"), 0644))

	out, err := execute(t, "sync", src, dest, "--logfile", tempLogfile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "a.txt")

	data, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))
}

func TestSyncCmdRejectsNonEmptyDestination(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "stray.txt"), []byte("x"), 0644))

	_, err := execute(t, "sync", src, dest, "--logfile", tempLogfile(t))
	require.Error(t, err)
}

func TestSyncCmdRejectsMissingSource(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "mirror")

	_, err := execute(t, "sync", filepath.Join(t.TempDir(), "nope"), dest, "--logfile", tempLogfile(t))
	require.Error(t, err)
}

func TestSyncCmdIntervalOverride(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "mirror")
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha"), 0644))

	_, err := execute(t, "sync", src, dest, "--interval", "250", "--logfile", tempLogfile(t))
	require.NoError(t, err)
}
