package repository

import (
	"github.com/arthur-debert/dirsync/pkg/errors"
	"github.com/arthur-debert/dirsync/pkg/fingerprint"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// TrackedFile is one file under repository management. It is owned by the
// repository that created it; callers outside the package only see it through
// the types.FileHandle interface.
type TrackedFile struct {
	fsys     types.FS
	absPath  string
	relPath  string
	lastHash types.Fingerprint
}

// newTrackedFile builds a TrackedFile and computes its initial fingerprint.
func newTrackedFile(fsys types.FS, absPath, relPath string) (*TrackedFile, error) {
	f := &TrackedFile{fsys: fsys, absPath: absPath, relPath: relPath}
	if err := f.rehash(); err != nil {
		return nil, err
	}
	return f, nil
}

// AbsPath returns the file's absolute location.
func (f *TrackedFile) AbsPath() string { return f.absPath }

// RelPath returns the file's path relative to the repository root.
func (f *TrackedFile) RelPath() string { return f.relPath }

// Hash returns the last-known content fingerprint.
func (f *TrackedFile) Hash() types.Fingerprint { return f.lastHash }

// Read returns the file's current bytes.
func (f *TrackedFile) Read() ([]byte, error) {
	data, err := f.fsys.ReadFile(f.absPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %q", f.absPath)
	}
	return data, nil
}

// rehash recomputes the fingerprint from the file's current bytes.
func (f *TrackedFile) rehash() error {
	hash, err := fingerprint.New(f.fsys, f.absPath)
	if err != nil {
		return err
	}
	f.lastHash = hash
	return nil
}
