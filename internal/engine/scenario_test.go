package engine

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/hashguard/internal/clock"
	"github.com/danieljhkim/hashguard/internal/fsops"
	"github.com/danieljhkim/hashguard/internal/hash"
	"github.com/danieljhkim/hashguard/internal/logging"
	"github.com/danieljhkim/hashguard/internal/state"
)

const (
	sha256Hello      = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	sha256HelloBang  = "ce06092fb948d9ffac7d1a376e404b26b7575bcc11ee05a4615fef4fec3a308b"
	databaseFileName = "integrity_hashes.json"
)

// openRealEngine wires the engine the same way the CLI does, against dir.
func openRealEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	store := state.NewFileStore(fsops.NewRealFS(), filepath.Join(dir, databaseFileName))
	eng := New(store, hash.NewSHA256Hasher(0), &clock.RealClock{}, logging.Discard())
	require.NoError(t, eng.Load(context.Background()))
	return eng
}

func TestScenario_AddVerifyModify(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0644))
	eng := openRealEngine(t, dir)
	ctx := context.Background()

	added, err := eng.Add(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, sha256Hello, added.Digest)

	result, err := eng.Verify(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, StatusMatch, result.Status)

	require.NoError(t, os.WriteFile(file, []byte("hello!"), 0644))

	result, err = eng.Verify(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, StatusMismatch, result.Status)
	assert.Equal(t, sha256Hello, result.StoredDigest)
	assert.Equal(t, sha256HelloBang, result.CurrentDigest)
}

func TestScenario_AddMissingFileLeavesStoreUnchanged(t *testing.T) {
	dir := t.TempDir()
	eng := openRealEngine(t, dir)
	ctx := context.Background()

	_, err := eng.Add(ctx, filepath.Join(dir, "nope.txt"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, slices.Collect(eng.List(ctx)))
	_, statErr := os.Stat(filepath.Join(dir, databaseFileName))
	assert.True(t, os.IsNotExist(statErr), "failed add must not write the database")
}

func TestScenario_MutationsSurviveRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	files := []string{"one.txt", "two.txt", "three.txt"}
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}

	eng := openRealEngine(t, dir)
	for _, name := range files {
		_, err := eng.Add(ctx, filepath.Join(dir, name))
		require.NoError(t, err)
	}
	_, err := eng.Remove(ctx, "2")
	require.NoError(t, err)

	// no explicit Save: every reported mutation is already on disk
	reopened := openRealEngine(t, dir)
	assert.Equal(t,
		[]string{filepath.Join(dir, "one.txt"), filepath.Join(dir, "three.txt")},
		slices.Collect(reopened.List(ctx)))

	result := reopened.VerifyAll(ctx)
	assert.True(t, result.OK())
	assert.Equal(t, 2, result.Matched)
}

func TestScenario_RelativeAndAbsoluteSpellingsMatch(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	oldDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer func() {
		_ = os.Chdir(oldDir)
	}()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0644))
	eng := openRealEngine(t, dir)
	ctx := context.Background()

	_, err = eng.Add(ctx, "./a.txt")
	require.NoError(t, err)

	result, err := eng.Verify(ctx, filepath.Join(dir, "sub", "..", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, StatusMatch, result.Status)
}

func TestScenario_DeletedFileIsVerifyError(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0644))
	eng := openRealEngine(t, dir)
	ctx := context.Background()
	_, err := eng.Add(ctx, file)
	require.NoError(t, err)

	require.NoError(t, os.Remove(file))

	result, err := eng.Verify(ctx, file)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, StatusError, result.Status)
	assert.NotEqual(t, StatusMismatch, result.Status)
}

func TestScenario_CorruptDatabaseRecovers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, databaseFileName), []byte("not json"), 0644))

	eng := openRealEngine(t, dir)

	assert.True(t, eng.Recovered())
	assert.Equal(t, 0, eng.Len())
	assert.Empty(t, eng.VerifyAll(context.Background()).Results)
}

func TestScenario_LegacyRelativeKeysAreVerifiable(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	oldDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer func() {
		_ = os.Chdir(oldDir)
	}()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0644))
	legacy := `{"tracked_files": {"a.txt": "` + sha256Hello + `", "./b/../a.txt": "` + sha256Hello + `"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, databaseFileName), []byte(legacy), 0644))

	eng := openRealEngine(t, dir)
	ctx := context.Background()

	assert.False(t, eng.Recovered())
	assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, slices.Collect(eng.List(ctx)))

	result, err := eng.Verify(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, StatusMatch, result.Status)

	_, err = eng.Remove(ctx, "./a.txt")
	require.NoError(t, err)
	assert.Equal(t, 0, eng.Len())
}

func TestScenario_NonUTF8NameIsRejectedBeforeSaving(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad\xffname")
	if err := os.WriteFile(file, []byte("hello"), 0644); err != nil {
		t.Skipf("filesystem does not accept non-UTF-8 names: %v", err)
	}
	eng := openRealEngine(t, dir)

	_, err := eng.Add(context.Background(), file)

	assert.ErrorIs(t, err, ErrInvalidPath)
	_, statErr := os.Stat(filepath.Join(dir, databaseFileName))
	assert.True(t, os.IsNotExist(statErr), "rejected add must not write the database")
}
