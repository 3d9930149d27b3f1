// Package types defines the core types shared across dirsync packages.
//
// It contains the filesystem abstraction (FS), the repository capability
// interfaces (Repository, FileHandle), and the change-record model produced
// by repository scans and consumed by the sync engine.
package types
