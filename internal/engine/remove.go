package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/danieljhkim/hashguard/internal/state"
)

// Remove stops tracking the entry named by selector.
//
// The selector is first matched as a path (after normalization). If no tracked
// path matches and the selector is an integer, it is taken as a 1-based
// position in the current listing order. Anything else returns
// ErrInvalidSelection and leaves the database unchanged.
func (e *Engine) Remove(ctx context.Context, selector string) (*RemoveResult, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelection)
	}

	if key, err := state.NormalizePath(selector); err == nil {
		if _, ok := e.db.Get(key); ok {
			return e.RemovePath(ctx, key)
		}
	}

	if n, err := strconv.Atoi(selector); err == nil {
		return e.RemoveAt(ctx, n)
	}

	return nil, fmt.Errorf("%w: %q is neither a tracked path nor a list number", ErrInvalidSelection, selector)
}

// RemovePath stops tracking path.
func (e *Engine) RemovePath(ctx context.Context, path string) (*RemoveResult, error) {
	key, err := state.NormalizePath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	index := -1
	for i, p := range e.db.Paths() {
		if p == key {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: %s is not tracked", ErrInvalidSelection, key)
	}

	return e.removeKey(key, index)
}

// RemoveAt stops tracking the entry at the 1-based listing position index.
func (e *Engine) RemoveAt(ctx context.Context, index int) (*RemoveResult, error) {
	entry, ok := e.db.At(index - 1)
	if !ok {
		return nil, fmt.Errorf("%w: %d is out of range 1-%d", ErrInvalidSelection, index, e.db.Len())
	}
	return e.removeKey(entry.Path, index-1)
}

func (e *Engine) removeKey(key string, position int) (*RemoveResult, error) {
	next := e.db.Clone()
	next.Delete(key)

	if err := e.commit(next); err != nil {
		return nil, err
	}

	e.log.Debug("removed from tracking", "path", key)
	return &RemoveResult{Path: key, Index: position + 1}, nil
}
