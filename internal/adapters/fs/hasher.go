package fs

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hasher computes content checksums of files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// CopyFile copies src to dst, truncating dst, and returns the number of
// bytes written and the XXHash of the copied content.
func (h *Hasher) CopyFile(src, dst string) (int64, uint64, error) {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to create file"), "path", dst)
	}

	hasher := xxhash.New()
	n, err := io.Copy(io.MultiWriter(out, hasher), in)
	if err != nil {
		_ = out.Close()
		return n, 0, zerr.With(zerr.Wrap(err, "failed to copy file content"), "path", dst)
	}

	if err := out.Close(); err != nil {
		return n, 0, zerr.With(zerr.Wrap(err, "failed to close file"), "path", dst)
	}

	return n, hasher.Sum64(), nil
}
