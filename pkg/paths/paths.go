// Package paths provides path validation and containment helpers.
//
// Repository-relative paths are the access boundary of a repository: they
// must stay inside the root, so every path accepted from a caller or a change
// record goes through ValidateRelPath first.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dirsync/pkg/errors"
)

// maxPathLength is a common filesystem limit.
const maxPathLength = 4096

// ValidateRelPath validates a repository-relative path.
// It checks for:
// - Empty paths
// - Null bytes
// - Absolute paths
// - Path traversal attempts (".." segments)
// - Excessive path length
func ValidateRelPath(relPath string) error {
	if relPath == "" {
		return errors.New(errors.ErrInvalidInput, "relative path cannot be empty")
	}

	if strings.Contains(relPath, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(relPath) > maxPathLength {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	if filepath.IsAbs(relPath) {
		return errors.Newf(errors.ErrInvalidInput, "path %q must be relative", relPath)
	}

	// Reject traversal before and after cleaning; "a/../../b" cleans to
	// "../b" but "a/.." alone cleans to "." which is equally unusable.
	cleaned := filepath.Clean(relPath)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return errors.Newf(errors.ErrInvalidInput, "path %q escapes the repository root", relPath)
	}

	return nil
}

// Normalize cleans a relative path and converts separators to the OS form.
func Normalize(relPath string) string {
	return filepath.Clean(filepath.FromSlash(relPath))
}

// Contains reports whether path lies inside root (strictly: root itself does
// not contain itself). Both arguments are made absolute before comparing.
func Contains(root, path string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %q", root)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %q", path)
	}
	return strings.HasPrefix(absPath, absRoot+string(filepath.Separator)), nil
}
