// Package filesystem provides filesystem implementations for dirsync.
//
// Two implementations of types.FS exist: an OS-backed one used by the daemon
// and an afero-backed one so repositories and the sync engine can run against
// an in-memory filesystem in tests.
package filesystem
