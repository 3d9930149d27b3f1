package repository

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dirsync/pkg/errors"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// UpdateStatus scans the tree and reconciles the indices with what is on
// disk, returning the classified changes. New, modified, moved and copied
// files are reported in discovery order; deletions come last.
//
// Classification works from two snapshots and the hash index alone:
//   - a new path with unseen content is a creation
//   - a new path whose content matches a tracked file still on disk is a
//     copy (a creation during the initial scan, when a pre-existing
//     duplicate is indistinguishable from independent authorship)
//   - a new path whose content matches only vanished files is a move, and
//     the vanished original is not separately reported as deleted
//   - a known path whose content changed is a modification, unless the new
//     content coincides with another tracked file, which reads as a copy
func (r *Local) UpdateStatus() ([]types.ChangeRecord, error) {
	changes := []types.ChangeRecord{}

	absPaths, err := r.walk(r.root)
	if err != nil {
		return nil, err
	}

	// Hashes that arrived by move this cycle; their vanished originals are
	// already accounted for.
	movedHashes := make(map[types.Fingerprint]bool)

	for _, absPath := range absPaths {
		relPath, err := filepath.Rel(r.root, absPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidLocation, "cannot relativize %q", absPath)
		}

		file, known := r.byPath[relPath]
		if !known {
			record, err := r.scanNewPath(absPath, relPath, movedHashes)
			if err != nil {
				return nil, err
			}
			changes = append(changes, record)
			continue
		}

		// Known path: recompute the fingerprint and reclassify on change.
		oldHash := file.lastHash
		if err := file.rehash(); err != nil {
			return nil, err
		}
		if file.lastHash == oldHash {
			continue
		}

		r.dropFromBucket(oldHash, file)
		command := types.CommandModify
		if _, seen := r.byHash[file.lastHash]; seen {
			// Content now coincides with another tracked file; from two
			// snapshots this is indistinguishable from a copy in place.
			command = types.CommandCopy
		}
		r.addToBucket(file)
		changes = append(changes, types.ChangeRecord{Command: command, Hash: file.lastHash, Path: relPath})
	}

	// Vanished paths: drop them from both indices, reporting a deletion
	// unless a move already explains the disappearance.
	vanished := make([]string, 0)
	for relPath, file := range r.byPath {
		if !r.fileExists(file.absPath) {
			vanished = append(vanished, relPath)
		}
	}
	sort.Strings(vanished)
	for _, relPath := range vanished {
		file := r.byPath[relPath]
		delete(r.byPath, relPath)
		r.dropFromBucket(file.lastHash, file)
		if !movedHashes[file.lastHash] {
			changes = append(changes, types.ChangeRecord{Command: types.CommandDelete, Hash: file.lastHash, Path: relPath})
		}
	}

	r.initialScan = false
	r.logger.Debug().Int("changes", len(changes)).Int("tracked", len(r.byPath)).Msg("scan complete")
	return changes, nil
}

// scanNewPath registers a file discovered at an untracked path and classifies
// it as create, copy or move.
func (r *Local) scanNewPath(absPath, relPath string, movedHashes map[types.Fingerprint]bool) (types.ChangeRecord, error) {
	file, err := newTrackedFile(r.fsys, absPath, relPath)
	if err != nil {
		return types.ChangeRecord{}, err
	}
	r.byPath[relPath] = file

	bucket, seen := r.byHash[file.lastHash]
	if !seen {
		r.addToBucket(file)
		return types.ChangeRecord{Command: types.CommandCreate, Hash: file.lastHash, Path: relPath}, nil
	}

	for _, original := range bucket {
		if r.fileExists(original.absPath) {
			// At least one holder of this content is still on disk.
			r.addToBucket(file)
			command := types.CommandCopy
			if r.initialScan {
				command = types.CommandCreate
			}
			return types.ChangeRecord{Command: command, Hash: file.lastHash, Path: relPath}, nil
		}
	}

	// Every holder of this content has vanished: the file was moved here.
	r.addToBucket(file)
	movedHashes[file.lastHash] = true
	return types.ChangeRecord{Command: types.CommandMove, Hash: file.lastHash, Path: relPath}, nil
}
