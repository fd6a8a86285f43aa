package integration

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/hashguard/internal/engine"
	"github.com/danieljhkim/hashguard/internal/hash"
	"github.com/danieljhkim/hashguard/internal/logging"
	"github.com/danieljhkim/hashguard/internal/state"
)

func TestWorkflow_FullCycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.fs.files["/data/a.txt"] = []byte("hello")
	env.fs.files["/data/b.txt"] = []byte("world")

	eng := env.open(t)
	for _, p := range []string{"/data/a.txt", "/data/b.txt"} {
		if _, err := eng.Add(ctx, p); err != nil {
			t.Fatalf("Add(%s) error = %v", p, err)
		}
	}

	// tamper with one file
	env.fs.files["/data/b.txt"] = []byte("w0rld")

	all := eng.VerifyAll(ctx)
	if all.Matched != 1 || all.Mismatched != 1 || all.Failed != 0 {
		t.Fatalf("VerifyAll() = %d/%d/%d, want 1/1/0", all.Matched, all.Mismatched, all.Failed)
	}
	if all.Results[1].Status != engine.StatusMismatch {
		t.Errorf("expected b.txt mismatch, got %s", all.Results[1].Status)
	}

	// re-adding accepts the new content as the baseline
	added, err := eng.Add(ctx, "/data/b.txt")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !added.Changed() || added.PreviousDigest != hash.Bytes([]byte("world")) {
		t.Errorf("expected replaced baseline, got %+v", added)
	}

	if _, err := eng.Remove(ctx, "1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	reopened := env.open(t)
	if got := slices.Collect(reopened.List(ctx)); !slices.Equal(got, []string{"/data/b.txt"}) {
		t.Errorf("List() after restart = %v", got)
	}
	if !reopened.VerifyAll(ctx).OK() {
		t.Error("expected every file to match after restart")
	}
}

func TestWorkflow_EveryMutationIsPersisted(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.fs.files["/data/a.txt"] = []byte("a")
	eng := env.open(t)

	if _, err := eng.Add(ctx, "/data/a.txt"); err != nil {
		t.Fatal(err)
	}
	if env.fs.writes != 1 {
		t.Errorf("expected 1 write after add, got %d", env.fs.writes)
	}

	eng.VerifyAll(ctx)
	if _, err := eng.Verify(ctx, "/data/a.txt"); err != nil {
		t.Fatal(err)
	}
	_ = slices.Collect(eng.List(ctx))
	if env.fs.writes != 1 {
		t.Errorf("read-only operations must not write, got %d writes", env.fs.writes)
	}

	if _, err := eng.RemovePath(ctx, "/data/a.txt"); err != nil {
		t.Fatal(err)
	}
	if env.fs.writes != 2 {
		t.Errorf("expected 2 writes after remove, got %d", env.fs.writes)
	}
}

func TestWorkflow_RecordsTimestamps(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.fs.files["/data/a.txt"] = []byte("a")
	eng := env.open(t)

	if _, err := eng.Add(ctx, "/data/a.txt"); err != nil {
		t.Fatal(err)
	}

	db, err := state.Decode(env.fs.files[databasePath])
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	entry, ok := db.Get("/data/a.txt")
	if !ok {
		t.Fatal("expected entry in saved document")
	}
	if entry.RecordedAt == nil || !entry.RecordedAt.Equal(env.clock.Now()) {
		t.Errorf("RecordedAt = %v, want %v", entry.RecordedAt, env.clock.Now())
	}

	env.clock.Advance(time.Hour)
	if _, err := eng.Add(ctx, "/data/a.txt"); err != nil {
		t.Fatal(err)
	}
	db, _ = state.Decode(env.fs.files[databasePath])
	entry, _ = db.Get("/data/a.txt")
	if !entry.RecordedAt.Equal(env.clock.Now()) {
		t.Errorf("re-add should refresh RecordedAt, got %v", entry.RecordedAt)
	}
}

func TestWorkflow_PersistenceFailureKeepsOldState(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.fs.files["/data/a.txt"] = []byte("a")
	env.fs.files["/data/b.txt"] = []byte("b")
	eng := env.open(t)
	if _, err := eng.Add(ctx, "/data/a.txt"); err != nil {
		t.Fatal(err)
	}

	env.fs.failWrites = true

	if _, err := eng.Add(ctx, "/data/b.txt"); !errors.Is(err, engine.ErrPersistence) {
		t.Fatalf("Add() error = %v, want ErrPersistence", err)
	}
	if _, err := eng.Remove(ctx, "/data/a.txt"); !errors.Is(err, engine.ErrPersistence) {
		t.Fatalf("Remove() error = %v, want ErrPersistence", err)
	}
	if got := slices.Collect(eng.List(ctx)); !slices.Equal(got, []string{"/data/a.txt"}) {
		t.Errorf("in-memory state changed after failed save: %v", got)
	}

	env.fs.failWrites = false
	if got := slices.Collect(env.open(t).List(ctx)); !slices.Equal(got, []string{"/data/a.txt"}) {
		t.Errorf("on-disk state changed after failed save: %v", got)
	}
}

func TestWorkflow_VerifyErrorsStayDistinct(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	for _, p := range []string{"/data/ok", "/data/gone", "/data/locked", "/data/dir"} {
		env.fs.files[p] = []byte(p)
	}
	eng := env.open(t)
	for _, p := range []string{"/data/ok", "/data/gone", "/data/locked", "/data/dir"} {
		if _, err := eng.Add(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	delete(env.fs.files, "/data/gone")
	env.fs.denied["/data/locked"] = true
	delete(env.fs.files, "/data/dir")
	env.fs.dirs["/data/dir"] = true

	tests := []struct {
		path string
		want error
	}{
		{"/data/gone", engine.ErrNotFound},
		{"/data/locked", engine.ErrPermissionDenied},
		{"/data/dir", engine.ErrReadFailure},
	}
	for _, tt := range tests {
		result, err := eng.Verify(ctx, tt.path)
		if !errors.Is(err, tt.want) {
			t.Errorf("Verify(%s) error = %v, want %v", tt.path, err, tt.want)
		}
		if result == nil || result.Status != engine.StatusError {
			t.Errorf("Verify(%s) result = %+v, want StatusError", tt.path, result)
		}
	}

	all := eng.VerifyAll(ctx)
	if all.Matched != 1 || all.Failed != 3 || all.Mismatched != 0 {
		t.Errorf("VerifyAll() = %d/%d/%d, want 1/0/3", all.Matched, all.Mismatched, all.Failed)
	}
}

func TestWorkflow_CorruptDocumentIsBackedUp(t *testing.T) {
	env := setupTestEnv(t)
	env.fs.files[databasePath] = []byte(`{"tracked_files": 42}`)

	eng := env.open(t)

	if !eng.Recovered() || eng.Len() != 0 {
		t.Fatalf("expected empty recovered engine, got recovered=%v len=%d", eng.Recovered(), eng.Len())
	}
	backup, ok := env.fs.files[env.store.BackupPath()]
	if !ok || !strings.Contains(string(backup), "42") {
		t.Errorf("expected corrupt document backed up, got %q", backup)
	}
}

func TestWorkflow_UnreadableDocumentIsFatal(t *testing.T) {
	env := setupTestEnv(t)
	env.fs.files[databasePath] = []byte(`{"schemaVersion":1,"tracked_files":[]}`)
	env.fs.denied[databasePath] = true

	eng := engine.New(env.store, &memHasher{fs: env.fs}, env.clock, logging.Discard())
	if err := eng.Load(context.Background()); err == nil {
		t.Fatal("expected Load() to fail on an unreadable document")
	}
}
