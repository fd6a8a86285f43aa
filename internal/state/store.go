package state

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/danieljhkim/hashguard/internal/fsops"
	"github.com/danieljhkim/hashguard/internal/hash"
)

// ErrStoreCorrupt indicates the database document exists but cannot be parsed.
// Load returns it together with an empty, usable database.
var ErrStoreCorrupt = errors.New("hash database is corrupt")

// Store provides an interface for persisting the hash database.
type Store interface {
	// Load reads the database. A missing document yields an empty database.
	// A corrupt document yields an empty database and ErrStoreCorrupt.
	Load() (*Database, error)

	// Save writes the full database atomically.
	Save(db *Database) error

	// Location describes where the database lives, for messages.
	Location() string
}

// FileStore implements Store using a JSON document on disk.
type FileStore struct {
	fs   fsops.FS
	path string
}

// NewFileStore creates a new FileStore backed by the document at path.
func NewFileStore(fs fsops.FS, path string) *FileStore {
	return &FileStore{
		fs:   fs,
		path: path,
	}
}

// Location returns the path of the database document.
func (s *FileStore) Location() string {
	return s.path
}

// BackupPath is where Load preserves a corrupt document before it can be
// overwritten by the next save.
func (s *FileStore) BackupPath() string {
	return s.path + ".corrupt"
}

// Load loads the database from disk.
func (s *FileStore) Load() (*Database, error) {
	exists, err := s.fs.Exists(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to check hash database: %w", err)
	}
	if !exists {
		return NewDatabase(), nil
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hash database: %w", err)
	}

	db, err := Decode(data)
	if err != nil {
		if werr := s.fs.AtomicWrite(s.BackupPath(), data, 0600); werr != nil {
			return NewDatabase(), fmt.Errorf("%w (backup failed: %v)", err, werr)
		}
		return NewDatabase(), fmt.Errorf("%w (original kept at %s)", err, s.BackupPath())
	}
	return db, nil
}

// Save saves the database atomically.
func (s *FileStore) Save(db *Database) error {
	data, err := Encode(db)
	if err != nil {
		return err
	}

	if err := s.fs.AtomicWrite(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write hash database: %w", err)
	}
	return nil
}

// document is the on-disk layout.
type document struct {
	SchemaVersion int     `json:"schemaVersion"`
	TrackedFiles  []Entry `json:"tracked_files"`
}

// rawDocument defers decoding of tracked_files so both the list form and the
// legacy {"path": "digest"} object form can be read.
type rawDocument struct {
	SchemaVersion int             `json:"schemaVersion"`
	TrackedFiles  json.RawMessage `json:"tracked_files"`
}

// Encode serializes the database document.
func Encode(db *Database) ([]byte, error) {
	doc := document{
		SchemaVersion: SchemaVersion,
		TrackedFiles:  db.Entries(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hash database: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a database document. Any error wraps ErrStoreCorrupt.
func Decode(data []byte) (*Database, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: document is not a JSON object", ErrStoreCorrupt)
	}

	var raw rawDocument
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	if raw.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported schema version %d", ErrStoreCorrupt, raw.SchemaVersion)
	}

	tracked := bytes.TrimSpace(raw.TrackedFiles)
	legacy := len(tracked) > 0 && tracked[0] == '{'
	entries, err := decodeEntries(tracked)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}

	db := NewDatabase()
	for _, e := range entries {
		if e.Path == "" {
			return nil, fmt.Errorf("%w: entry with empty path", ErrStoreCorrupt)
		}
		if !hash.IsDigest(e.Digest) {
			return nil, fmt.Errorf("%w: invalid digest for %s", ErrStoreCorrupt, e.Path)
		}
		key, err := NormalizePath(e.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
		}
		e.Path = key

		// legacy keys were stored as typed, so two spellings of one file may
		// both be present. They collapse when they agree on the digest.
		if prev, ok := db.Get(key); ok {
			if legacy && prev.Digest == e.Digest {
				continue
			}
			return nil, fmt.Errorf("%w: duplicate entry for %s", ErrStoreCorrupt, key)
		}
		db.Put(e)
	}
	return db, nil
}

func decodeEntries(raw []byte) ([]Entry, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		var entries []Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	case '{':
		var legacy map[string]string
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, err
		}
		paths := make([]string, 0, len(legacy))
		for p := range legacy {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		entries := make([]Entry, 0, len(paths))
		for _, p := range paths {
			entries = append(entries, Entry{Path: p, Digest: legacy[p]})
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("tracked_files must be a list or an object")
	}
}
