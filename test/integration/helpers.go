package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/hashguard/internal/clock"
	"github.com/danieljhkim/hashguard/internal/engine"
	"github.com/danieljhkim/hashguard/internal/hash"
	"github.com/danieljhkim/hashguard/internal/logging"
	"github.com/danieljhkim/hashguard/internal/state"
)

const databasePath = "/hashguard/integrity_hashes.json"

// errDiskFull is returned by testFS writes while failWrites is set.
var errDiskFull = errors.New("no space left on device")

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files      map[string][]byte
	dirs       map[string]bool
	denied     map[string]bool
	failWrites bool
	writes     int
}

func newTestFS() *testFS {
	return &testFS{
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
		denied: make(map[string]bool),
	}
}

func (fs *testFS) Exists(path string) (bool, error) {
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if fs.failWrites {
		return fmt.Errorf("write %s: %w", path, errDiskFull)
	}
	fs.writes++
	fs.files[path] = append([]byte(nil), data...)
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if fs.denied[path] {
		return nil, os.ErrPermission
	}
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	if fs.dirs[path] {
		return nil, fmt.Errorf("read %s: is a directory", path)
	}
	return nil, os.ErrNotExist
}

// memHasher digests the contents of a testFS, classifying failures the way
// the real hasher does.
type memHasher struct {
	fs *testFS
}

func (h *memHasher) HashFile(path string) (string, error) {
	data, err := h.fs.ReadFile(path)
	switch {
	case err == nil:
		return hash.Bytes(data), nil
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("%w: %s", hash.ErrNotFound, path)
	case errors.Is(err, os.ErrPermission):
		return "", fmt.Errorf("%w: %s", hash.ErrPermissionDenied, path)
	default:
		return "", fmt.Errorf("%w: %v", hash.ErrReadFailure, err)
	}
}

// testEnv bundles an engine with the in-memory pieces behind it.
type testEnv struct {
	fs    *testFS
	store *state.FileStore
	clock *clock.FakeClock
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fs := newTestFS()
	fs.dirs[filepath.Dir(databasePath)] = true
	return &testEnv{
		fs:    fs,
		store: state.NewFileStore(fs, databasePath),
		clock: clock.NewFakeClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
	}
}

// open builds and loads a fresh engine over the environment, the way a new
// process would.
func (env *testEnv) open(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New(env.store, &memHasher{fs: env.fs}, env.clock, logging.Discard())
	if err := eng.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return eng
}
