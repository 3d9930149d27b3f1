package repository

import (
	"path/filepath"

	"github.com/arthur-debert/dirsync/pkg/errors"
	"github.com/arthur-debert/dirsync/pkg/filesystem"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// Options configures repository construction.
type Options struct {
	// FS is the backing filesystem; the OS filesystem when nil.
	FS types.FS

	// LogfilePath, when set, may not lie inside the repository tree.
	LogfilePath string

	// MustBeEmpty rejects a root that already contains files. Set for the
	// destination of a mirror, which must start out empty.
	MustBeEmpty bool
}

func (o Options) fs() types.FS {
	if o.FS != nil {
		return o.FS
	}
	return filesystem.NewOS()
}

// Resolve maps a location string to a concrete repository implementation.
// Only local-filesystem repositories exist today: a location resolves when it
// names an existing directory or one whose parent exists. Remote backends
// would hook in here.
func Resolve(location string, opts Options) (types.Repository, error) {
	fsys := opts.fs()

	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidLocation, "cannot resolve %q", location)
	}

	if info, err := fsys.Stat(abs); err == nil && info.IsDir() {
		return NewLocal(abs, opts)
	}
	if info, err := fsys.Stat(filepath.Dir(abs)); err == nil && info.IsDir() {
		return NewLocal(abs, opts)
	}

	return nil, errors.Newf(errors.ErrInvalidLocation, "cannot resolve repository location %q", location)
}
