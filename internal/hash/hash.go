// Package hash provides file digest computation for integrity checks.
//
// hashguard fingerprints tracked files with SHA-256. Files are streamed through
// the hash in fixed-size chunks so arbitrarily large files never have to fit in
// memory. Failures are classified into ErrNotFound, ErrPermissionDenied and
// ErrReadFailure so callers can report them distinctly. The package provides
// both a real implementation and a fake implementation for testing.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// DefaultChunkSize is the read buffer size used when none is configured.
const DefaultChunkSize = 8192

var (
	// ErrNotFound indicates the path does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the file exists but cannot be read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrReadFailure indicates any other failure while reading the file.
	ErrReadFailure = errors.New("error reading file")
)

// Hasher provides an abstraction for file hashing operations.
type Hasher interface {
	// HashFile computes the hex digest of the file at the given path.
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct {
	chunkSize int
}

// NewSHA256Hasher creates a new SHA256Hasher that reads chunkSize bytes at a
// time. A non-positive chunkSize selects DefaultChunkSize.
func NewSHA256Hasher(chunkSize int) *SHA256Hasher {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &SHA256Hasher{chunkSize: chunkSize}
}

// HashFile computes the SHA-256 digest of the file at the given path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", classify(path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrReadFailure, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", classify(path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	digest, err := Reader(file, h.chunkSize)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadFailure, path, err)
	}
	return digest, nil
}

// Reader streams r through SHA-256 using a buffer of chunkSize bytes and
// returns the lowercase hex digest.
func Reader(r io.Reader, chunkSize int) (string, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	hasher := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(hasher, onlyReader{r}, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Bytes returns the lowercase hex SHA-256 digest of data.
func Bytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// IsDigest reports whether s looks like a digest produced by this package.
func IsDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// classify maps an open/stat error onto the package's error taxonomy.
func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%w: %s: %w", ErrReadFailure, path, err)
	}
}

// onlyReader hides WriterTo on *os.File so io.CopyBuffer actually uses the
// caller's buffer.
type onlyReader struct {
	io.Reader
}

// FakeHasher implements Hasher with deterministic hashes for testing.
type FakeHasher struct {
	hashes map[string]string
	errs   map[string]error
	calls  int
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
		errs:   make(map[string]error),
	}
}

// SetHash sets the hash for a specific path (for testing).
func (h *FakeHasher) SetHash(path, hash string) {
	delete(h.errs, path)
	h.hashes[path] = hash
}

// SetError makes HashFile fail for path with err.
func (h *FakeHasher) SetError(path string, err error) {
	h.errs[path] = err
}

// Calls returns how many times HashFile has been invoked.
func (h *FakeHasher) Calls() int {
	return h.calls
}

// HashFile returns the predetermined hash for the given path. Unknown paths
// report ErrNotFound.
func (h *FakeHasher) HashFile(path string) (string, error) {
	h.calls++
	if err, ok := h.errs[path]; ok {
		return "", err
	}
	if hash, ok := h.hashes[path]; ok {
		return hash, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}
