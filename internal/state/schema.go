package state

import "time"

// SchemaVersion is the version written to the database document.
const SchemaVersion = 1

// Entry is a tracked file and the digest recorded for it.
type Entry struct {
	// Path is the normalized path of the tracked file
	Path string `json:"path"`

	// Digest is the lowercase hex SHA-256 of the file contents at add time
	Digest string `json:"digest"`

	// RecordedAt is when the digest was recorded (absent for legacy databases)
	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}

// Database is the in-memory hash database.
// Listing order is insertion order; re-adding a path keeps its position.
type Database struct {
	entries []Entry
	index   map[string]int
}

// NewDatabase creates a new empty Database.
func NewDatabase() *Database {
	return &Database{
		entries: []Entry{},
		index:   make(map[string]int),
	}
}

// Len returns the number of tracked files.
func (d *Database) Len() int {
	return len(d.entries)
}

// Get returns the entry for path.
func (d *Database) Get(path string) (Entry, bool) {
	i, ok := d.index[path]
	if !ok {
		return Entry{}, false
	}
	return d.entries[i], true
}

// At returns the entry at position i of the listing order.
func (d *Database) At(i int) (Entry, bool) {
	if i < 0 || i >= len(d.entries) {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Put inserts or overwrites the entry for e.Path and returns the previous
// entry if one existed.
func (d *Database) Put(e Entry) (prev Entry, replaced bool) {
	if i, ok := d.index[e.Path]; ok {
		prev = d.entries[i]
		d.entries[i] = e
		return prev, true
	}
	d.index[e.Path] = len(d.entries)
	d.entries = append(d.entries, e)
	return Entry{}, false
}

// Delete removes the entry for path. It reports whether the path was tracked.
func (d *Database) Delete(path string) bool {
	i, ok := d.index[path]
	if !ok {
		return false
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, path)
	for j := i; j < len(d.entries); j++ {
		d.index[d.entries[j].Path] = j
	}
	return true
}

// Entries returns a copy of all entries in listing order.
func (d *Database) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Paths returns the tracked paths in listing order.
func (d *Database) Paths() []string {
	paths := make([]string, len(d.entries))
	for i, e := range d.entries {
		paths[i] = e.Path
	}
	return paths
}

// Clone returns an independent copy of the database.
func (d *Database) Clone() *Database {
	c := &Database{
		entries: d.Entries(),
		index:   make(map[string]int, len(d.index)),
	}
	for k, v := range d.index {
		c.index[k] = v
	}
	return c
}

// Equal reports whether both databases hold the same path -> digest mapping,
// ignoring order and timestamps.
func (d *Database) Equal(other *Database) bool {
	if d.Len() != other.Len() {
		return false
	}
	for _, e := range d.entries {
		o, ok := other.Get(e.Path)
		if !ok || o.Digest != e.Digest {
			return false
		}
	}
	return true
}
