// Package fingerprint computes content fingerprints for repository files.
//
// A fingerprint is the hex-encoded BLAKE2b-512 digest of a file's bytes.
// Files are streamed through the hash in bounded chunks so arbitrarily large
// files never load fully into memory.
package fingerprint

import (
	"encoding/hex"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/arthur-debert/dirsync/pkg/errors"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// chunkSize bounds how much of a file is held in memory while hashing.
const chunkSize = 64 * 1024

// New computes the fingerprint of the file at absPath on fsys.
func New(fsys types.FS, absPath string) (types.Fingerprint, error) {
	f, err := fsys.Open(absPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileRead, "cannot open %q for hashing", absPath)
	}
	defer func() { _ = f.Close() }()

	return FromReader(f)
}

// FromReader folds the reader's bytes into a fingerprint.
func FromReader(r io.Reader) (types.Fingerprint, error) {
	h, err := blake2b.New512(nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot initialize hash state")
	}

	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", errors.Wrap(err, errors.ErrFileRead, "failed to read content while hashing")
	}

	return types.Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}

// FromBytes computes the fingerprint of content already held in memory.
func FromBytes(content []byte) types.Fingerprint {
	sum := blake2b.Sum512(content)
	return types.Fingerprint(hex.EncodeToString(sum[:]))
}
