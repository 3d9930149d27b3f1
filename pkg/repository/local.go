package repository

import (
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dirsync/pkg/errors"
	"github.com/arthur-debert/dirsync/pkg/fingerprint"
	"github.com/arthur-debert/dirsync/pkg/logging"
	"github.com/arthur-debert/dirsync/pkg/paths"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// Local is the repository implementation over a local directory tree.
type Local struct {
	root   string
	fsys   types.FS
	logger zerolog.Logger

	byPath map[string]*TrackedFile
	byHash map[types.Fingerprint][]*TrackedFile

	// initialScan makes the first scan classify a content-identical file at
	// a new path as a creation instead of a copy: before the first scan a
	// pre-existing duplicate cannot be told apart from two independently
	// authored files with identical content.
	initialScan bool
}

var _ types.Repository = (*Local)(nil)

// NewLocal creates a repository bound to the directory at root, creating the
// directory if it does not exist. The guards mirror configuration-time
// validation: the logfile may not lie inside the tree, and a repository
// flagged mustBeEmpty (the destination of a mirror) may not contain files.
func NewLocal(root string, opts Options) (*Local, error) {
	fsys := opts.fs()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidLocation, "cannot resolve %q", root)
	}

	if opts.LogfilePath != "" {
		inside, err := paths.Contains(absRoot, opts.LogfilePath)
		if err != nil {
			return nil, err
		}
		if inside {
			return nil, errors.Newf(errors.ErrLogfileInRepo,
				"logfile %q lies inside repository %q", opts.LogfilePath, absRoot)
		}
	}

	if err := fsys.MkdirAll(absRoot, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create repository root %q", absRoot)
	}

	if opts.MustBeEmpty {
		entries, err := fsys.ReadDir(absRoot)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirRead, "cannot list repository root %q", absRoot)
		}
		if len(entries) > 0 {
			return nil, errors.Newf(errors.ErrDestNotEmpty, "repository %q is not empty", absRoot)
		}
	}

	return &Local{
		root:        absRoot,
		fsys:        fsys,
		logger:      logging.GetLogger("repository").With().Str("root", absRoot).Logger(),
		byPath:      make(map[string]*TrackedFile),
		byHash:      make(map[types.Fingerprint][]*TrackedFile),
		initialScan: true,
	}, nil
}

// Root returns the absolute repository root.
func (r *Local) Root() string { return r.root }

// FileAtPath looks up a tracked file by its relative path.
func (r *Local) FileAtPath(relPath string) (types.FileHandle, error) {
	f, ok := r.byPath[paths.Normalize(relPath)]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no file tracked at %q", relPath)
	}
	return f, nil
}

// FilesWithHash returns every tracked file holding hash, in registration order.
func (r *Local) FilesWithHash(hash types.Fingerprint) ([]types.FileHandle, error) {
	bucket, ok := r.byHash[hash]
	if !ok || len(bucket) == 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no file tracked with hash %s", hash)
	}
	handles := make([]types.FileHandle, len(bucket))
	for i, f := range bucket {
		handles[i] = f
	}
	return handles, nil
}

// Create writes content as a new file at relPath and tracks it.
// An already-tracked path is a caller error and is rejected explicitly.
func (r *Local) Create(relPath string, content []byte) error {
	relPath, err := r.checkedRel(relPath)
	if err != nil {
		return err
	}
	if _, exists := r.byPath[relPath]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "path %q is already tracked", relPath)
	}

	absPath := filepath.Join(r.root, relPath)
	if err := r.writeFile(absPath, content); err != nil {
		return err
	}

	f := &TrackedFile{fsys: r.fsys, absPath: absPath, relPath: relPath, lastHash: fingerprint.FromBytes(content)}
	r.byPath[relPath] = f
	r.addToBucket(f)

	r.logger.Debug().Str("path", relPath).Msg("file created")
	return nil
}

// Modify overwrites the bytes of the tracked file at relPath and moves it to
// the bucket of its new fingerprint.
func (r *Local) Modify(relPath string, content []byte) error {
	relPath = paths.Normalize(relPath)
	f, ok := r.byPath[relPath]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "no file tracked at %q", relPath)
	}

	if err := r.writeFile(f.absPath, content); err != nil {
		return err
	}

	r.dropFromBucket(f.lastHash, f)
	f.lastHash = fingerprint.FromBytes(content)
	r.addToBucket(f)

	r.logger.Debug().Str("path", relPath).Msg("file modified")
	return nil
}

// Move relocates a tracked file holding hash to destRelPath. Among duplicate
// holders the earliest-registered one is chosen. Bucket membership does not
// change; only the path indices do.
func (r *Local) Move(hash types.Fingerprint, destRelPath string) error {
	destRelPath, err := r.checkedRel(destRelPath)
	if err != nil {
		return err
	}
	bucket, ok := r.byHash[hash]
	if !ok || len(bucket) == 0 {
		return errors.Newf(errors.ErrNotFound, "no file tracked with hash %s", hash)
	}
	if _, exists := r.byPath[destRelPath]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "path %q is already tracked", destRelPath)
	}

	f := bucket[0]
	destAbs := filepath.Join(r.root, destRelPath)
	if err := r.fsys.MkdirAll(filepath.Dir(destAbs), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %q", destAbs)
	}
	if err := r.fsys.Rename(f.absPath, destAbs); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "cannot move %q to %q", f.absPath, destAbs)
	}

	delete(r.byPath, f.relPath)
	f.absPath = destAbs
	f.relPath = destRelPath
	r.byPath[destRelPath] = f

	r.logger.Debug().Str("path", destRelPath).Msg("file moved")
	return nil
}

// Copy duplicates a tracked file holding hash to destRelPath. The new file
// shares the source's fingerprint and joins its bucket.
func (r *Local) Copy(hash types.Fingerprint, destRelPath string) error {
	destRelPath, err := r.checkedRel(destRelPath)
	if err != nil {
		return err
	}
	bucket, ok := r.byHash[hash]
	if !ok || len(bucket) == 0 {
		return errors.Newf(errors.ErrNotFound, "no file tracked with hash %s", hash)
	}
	if _, exists := r.byPath[destRelPath]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "path %q is already tracked", destRelPath)
	}

	src := bucket[0]
	content, err := src.Read()
	if err != nil {
		return err
	}

	destAbs := filepath.Join(r.root, destRelPath)
	if err := r.writeFile(destAbs, content); err != nil {
		return err
	}

	f := &TrackedFile{fsys: r.fsys, absPath: destAbs, relPath: destRelPath, lastHash: src.lastHash}
	r.byPath[destRelPath] = f
	r.addToBucket(f)

	r.logger.Debug().Str("path", destRelPath).Msg("file copied")
	return nil
}

// Delete removes the tracked file at relPath from disk and both indices.
func (r *Local) Delete(relPath string) error {
	relPath = paths.Normalize(relPath)
	f, ok := r.byPath[relPath]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "no file tracked at %q", relPath)
	}

	if err := r.fsys.Remove(f.absPath); err != nil {
		return errors.Wrapf(err, errors.ErrFileDelete, "cannot delete %q", f.absPath)
	}

	delete(r.byPath, relPath)
	r.dropFromBucket(f.lastHash, f)

	r.logger.Debug().Str("path", relPath).Msg("file deleted")
	return nil
}

// Prune removes every empty directory under the root (bottom-up), then every
// on-disk file whose relative path is not tracked. Directories emptied by the
// second pass are picked up by the next prune.
func (r *Local) Prune() error {
	if err := r.pruneEmptyDirs(r.root); err != nil {
		return err
	}

	files, err := r.walk(r.root)
	if err != nil {
		return err
	}
	for _, absPath := range files {
		relPath, err := filepath.Rel(r.root, absPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidLocation, "cannot relativize %q", absPath)
		}
		if _, tracked := r.byPath[relPath]; !tracked {
			if err := r.fsys.Remove(absPath); err != nil {
				return errors.Wrapf(err, errors.ErrFileDelete, "cannot prune %q", absPath)
			}
			r.logger.Debug().Str("path", relPath).Msg("untracked file pruned")
		}
	}
	return nil
}

// pruneEmptyDirs removes empty directories below dir, depth-first so a chain
// of nested empty directories collapses in one pass.
func (r *Local) pruneEmptyDirs(dir string) error {
	entries, err := r.fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirRead, "cannot list %q", dir)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		if err := r.pruneEmptyDirs(sub); err != nil {
			return err
		}
		remaining, err := r.fsys.ReadDir(sub)
		if err != nil {
			return errors.Wrapf(err, errors.ErrDirRead, "cannot list %q", sub)
		}
		if len(remaining) == 0 {
			if err := r.fsys.Remove(sub); err != nil {
				return errors.Wrapf(err, errors.ErrFileDelete, "cannot remove empty directory %q", sub)
			}
			r.logger.Debug().Str("dir", sub).Msg("empty directory pruned")
		}
	}
	return nil
}

// checkedRel validates and normalizes a caller-supplied relative path.
func (r *Local) checkedRel(relPath string) (string, error) {
	if err := paths.ValidateRelPath(relPath); err != nil {
		return "", err
	}
	return paths.Normalize(relPath), nil
}

// writeFile writes content at absPath, creating parent directories as needed.
func (r *Local) writeFile(absPath string, content []byte) error {
	if err := r.fsys.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %q", absPath)
	}
	if err := r.fsys.WriteFile(absPath, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %q", absPath)
	}
	return nil
}

// addToBucket appends f to the bucket of its current fingerprint.
func (r *Local) addToBucket(f *TrackedFile) {
	r.byHash[f.lastHash] = append(r.byHash[f.lastHash], f)
}

// dropFromBucket removes f from the bucket keyed by hash, deleting the bucket
// when it empties so no empty bucket outlives the mutation.
func (r *Local) dropFromBucket(hash types.Fingerprint, f *TrackedFile) {
	bucket := r.byHash[hash]
	if i := slices.Index(bucket, f); i >= 0 {
		bucket = slices.Delete(bucket, i, i+1)
	}
	if len(bucket) == 0 {
		delete(r.byHash, hash)
	} else {
		r.byHash[hash] = bucket
	}
}

// fileExists reports whether a regular file is present at absPath.
func (r *Local) fileExists(absPath string) bool {
	info, err := r.fsys.Stat(absPath)
	return err == nil && info.Mode().IsRegular()
}

// walk returns the absolute paths of every regular file under dir, in a
// deterministic depth-first lexical order.
func (r *Local) walk(dir string) ([]string, error) {
	entries, err := r.fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirRead, "cannot list %q", dir)
	}

	var files []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			sub, err := r.walk(full)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		if entry.Type()&fs.ModeType == 0 {
			files = append(files, full)
		}
	}
	return files, nil
}
