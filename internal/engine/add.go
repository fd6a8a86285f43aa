package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/hashguard/internal/state"
)

// Add records the current digest of the file at path, replacing any previous
// baseline. The database is persisted before Add returns success; on any error
// the database is unchanged.
func (e *Engine) Add(ctx context.Context, path string) (*AddResult, error) {
	key, err := state.NormalizePath(path)
	if err != nil {
		if errors.Is(err, state.ErrEmptyPath) {
			return nil, fmt.Errorf("%w: empty path", ErrNotFound)
		}
		return nil, err
	}

	digest, err := e.hasher.HashFile(key)
	if err != nil {
		return nil, err
	}
	e.log.Debug("computed digest", "path", key, "digest", digest)

	now := e.clock.Now()
	next := e.db.Clone()
	prev, replaced := next.Put(state.Entry{
		Path:       key,
		Digest:     digest,
		RecordedAt: &now,
	})

	if err := e.commit(next); err != nil {
		return nil, err
	}

	result := &AddResult{
		Path:     key,
		Digest:   digest,
		Replaced: replaced,
	}
	if replaced {
		result.PreviousDigest = prev.Digest
	}
	return result, nil
}
