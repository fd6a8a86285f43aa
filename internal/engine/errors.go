package engine

import (
	"errors"

	"github.com/danieljhkim/hashguard/internal/hash"
	"github.com/danieljhkim/hashguard/internal/state"
)

var (
	// ErrNotTracked indicates the path has no recorded digest.
	ErrNotTracked = errors.New("file not tracked")

	// ErrInvalidSelection indicates a remove selector matched no entry.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrPersistence indicates the database could not be written; the
	// mutation was not applied.
	ErrPersistence = errors.New("failed to persist hash database")
)

// Digest and store errors, re-exported so callers only need this package.
var (
	ErrNotFound         = hash.ErrNotFound
	ErrPermissionDenied = hash.ErrPermissionDenied
	ErrReadFailure      = hash.ErrReadFailure
	ErrStoreCorrupt     = state.ErrStoreCorrupt
	ErrInvalidPath      = state.ErrInvalidPath
)
