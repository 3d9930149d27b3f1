// Package repository implements the content-addressed index over a directory
// tree and the scan/diff algorithm that classifies filesystem changes.
//
// A repository tracks every regular file under its root in two indices that
// are kept mutually consistent: byPath (relative path to tracked file, unique
// keys) and byHash (fingerprint to the ordered set of tracked files sharing
// that content). Duplicate content is legal; a fingerprint bucket holds its
// files in registration order and an emptied bucket is removed immediately.
//
// Mutation is not safe for concurrent use: each repository expects a single
// writer, which is how the sync engine drives it.
package repository
