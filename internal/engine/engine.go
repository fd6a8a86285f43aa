// Package engine provides the reconciliation logic for hashguard.
//
// The engine owns the in-memory hash database for the life of the process. It
// coordinates the digest engine and the database store to add files, verify
// them against their recorded baselines, list and remove them.
//
// Key components:
//   - Engine: Main orchestrator called by the CLI and the interactive shell
//   - Add/Remove: Mutations, persisted before they report success
//   - Verify/VerifyAll: Read-only reconciliation, never updates a baseline
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danieljhkim/hashguard/internal/clock"
	"github.com/danieljhkim/hashguard/internal/hash"
	"github.com/danieljhkim/hashguard/internal/state"
)

// Engine orchestrates all hashguard operations.
// It is not safe for concurrent use; the CLI runs one operation at a time.
type Engine struct {
	store  state.Store
	hasher hash.Hasher
	clock  clock.Clock
	log    *slog.Logger

	db        *state.Database
	recovered bool
}

// New creates a new Engine with the given dependencies and an empty database.
// Call Load to read the persisted database.
func New(
	store state.Store,
	hasher hash.Hasher,
	clk clock.Clock,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		store:  store,
		hasher: hasher,
		clock:  clk,
		log:    logger,
		db:     state.NewDatabase(),
	}
}

// Load reads the persisted database. A corrupt database is logged once and
// replaced by an empty one; only unreadable storage is returned as an error.
func (e *Engine) Load(ctx context.Context) error {
	db, err := e.store.Load()
	switch {
	case errors.Is(err, state.ErrStoreCorrupt):
		e.log.Warn("hash database is corrupt, starting fresh",
			"location", e.store.Location(), "error", err)
		e.recovered = true
	case err != nil:
		return fmt.Errorf("failed to load hash database: %w", err)
	}

	e.db = db
	e.log.Debug("loaded hash database", "location", e.store.Location(), "tracked", db.Len())
	return nil
}

// Recovered reports whether Load discarded a corrupt database.
func (e *Engine) Recovered() bool {
	return e.recovered
}

// Location describes where the database is persisted.
func (e *Engine) Location() string {
	return e.store.Location()
}

// Save persists the current database. It is safe to call when nothing changed.
func (e *Engine) Save(ctx context.Context) error {
	if err := e.store.Save(e.db); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	e.log.Debug("saved hash database", "location", e.store.Location(), "tracked", e.db.Len())
	return nil
}

// commit persists next and adopts it as the current database. On failure the
// current database is left untouched so memory never runs ahead of disk.
func (e *Engine) commit(next *state.Database) error {
	if err := e.store.Save(next); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	e.db = next
	e.log.Debug("saved hash database", "location", e.store.Location(), "tracked", next.Len())
	return nil
}
