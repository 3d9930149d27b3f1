package types

// FileHandle exposes a single tracked file to callers outside the repository.
type FileHandle interface {
	// AbsPath returns the file's absolute location on the backing filesystem.
	AbsPath() string

	// RelPath returns the file's path relative to the repository root.
	RelPath() string

	// Hash returns the file's last-known content fingerprint.
	Hash() Fingerprint

	// Read returns the file's current bytes.
	Read() ([]byte, error)
}

// Repository is the capability interface over a managed directory tree.
// Implementations own the path and hash indices over their tracked files and
// must not be mutated concurrently.
type Repository interface {
	// Root returns the absolute path of the repository root.
	Root() string

	// UpdateStatus scans the tree, reconciles the indices with what is on
	// disk, and returns the classified changes in discovery order
	// (deletions last).
	UpdateStatus() ([]ChangeRecord, error)

	// FileAtPath looks up a tracked file by its relative path.
	FileAtPath(relPath string) (FileHandle, error)

	// FilesWithHash returns every tracked file currently holding the given
	// fingerprint, in registration order.
	FilesWithHash(hash Fingerprint) ([]FileHandle, error)

	// Create writes content as a new file at relPath and tracks it.
	// Fails if relPath is already tracked.
	Create(relPath string, content []byte) error

	// Modify overwrites the tracked file at relPath with content.
	Modify(relPath string, content []byte) error

	// Move relocates a tracked file holding hash to destRelPath.
	Move(hash Fingerprint, destRelPath string) error

	// Copy duplicates a tracked file holding hash to destRelPath.
	Copy(hash Fingerprint, destRelPath string) error

	// Delete removes the tracked file at relPath from disk and the indices.
	Delete(relPath string) error

	// Prune removes empty directories and untracked files under the root.
	Prune() error
}
