package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/danieljhkim/hashguard/internal/clock"
	"github.com/danieljhkim/hashguard/internal/config"
	"github.com/danieljhkim/hashguard/internal/engine"
	"github.com/danieljhkim/hashguard/internal/fsops"
	"github.com/danieljhkim/hashguard/internal/hash"
	"github.com/danieljhkim/hashguard/internal/logging"
	"github.com/danieljhkim/hashguard/internal/state"
)

// ErrIntegrityCompromised is returned after a verification that found a
// modified or unreadable file. The details have already been printed.
var ErrIntegrityCompromised = errors.New("integrity compromised")

// newEngine creates a new engine with real implementations of all dependencies
// and loads the hash database.
func newEngine(ctx context.Context) (*engine.Engine, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	cfg, err := config.Load(paths.Config)
	if err != nil {
		return nil, err
	}
	resolved := cfg.Apply(*paths)
	if dbPath != "" {
		abs, err := filepath.Abs(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		resolved.Database = abs
	}

	logging.SetLevel(string(cfg.LogLevel))
	if debugLog {
		logging.SetDebug(true)
	}
	logger := logging.Logger()

	if err := resolved.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	if n, err := fsops.CleanTemp(filepath.Dir(resolved.Database)); err != nil {
		logger.Warn("could not clean stale temp files", "error", err)
	} else if n > 0 {
		logger.Debug("removed stale temp files", "count", n)
	}

	fs := fsops.NewRealFS()
	store := state.NewFileStore(fs, resolved.Database)
	hasher := hash.NewSHA256Hasher(cfg.ChunkSize)
	clk := &clock.RealClock{}

	eng := engine.New(store, hasher, clk, logger)
	if err := eng.Load(ctx); err != nil {
		return nil, err
	}
	if eng.Recovered() {
		PrintWarning(fmt.Sprintf("Error loading hash database. Starting fresh (corrupt copy kept at %s).", store.BackupPath()))
	}
	return eng, nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeError maps an error onto a distinct, human-readable message.
func describeError(err error) string {
	var headline string
	switch {
	case errors.Is(err, engine.ErrNotTracked):
		headline = "File not tracked. Add it first."
	case errors.Is(err, engine.ErrNotFound):
		headline = "File not found."
	case errors.Is(err, engine.ErrPermissionDenied):
		headline = "Permission denied."
	case errors.Is(err, engine.ErrReadFailure):
		headline = "Error reading file."
	case errors.Is(err, engine.ErrInvalidPath):
		headline = "Unsupported file name."
	case errors.Is(err, engine.ErrInvalidSelection):
		headline = "Invalid selection."
	case errors.Is(err, engine.ErrPersistence):
		headline = "Could not save the hash database; the change was not applied."
	case errors.Is(err, ErrIntegrityCompromised):
		headline = "Integrity compromised."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
	return fmt.Sprintf("%s (%v)", headline, err)
}
