package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/hashguard/internal/state"
)

// Verify recomputes the digest of a tracked file and compares it with the
// recorded baseline.
//
// An untracked path returns ErrNotTracked and no result. When the file can no
// longer be read, Verify returns both a StatusError result (carrying the
// stored digest) and the digest engine's error. A mismatch is not an error.
func (e *Engine) Verify(ctx context.Context, path string) (*VerifyResult, error) {
	key, err := state.NormalizePath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotTracked, err)
	}

	entry, ok := e.db.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotTracked, key)
	}

	result := e.verifyEntry(entry)
	if result.Status == StatusError {
		return &result, result.Err
	}
	return &result, nil
}

// VerifyAll verifies every tracked file in listing order. A file that cannot
// be read is reported as StatusError and does not stop the others. The
// database is never modified.
func (e *Engine) VerifyAll(ctx context.Context) *VerifyAllResult {
	entries := e.db.Entries()
	result := &VerifyAllResult{
		Results: make([]VerifyResult, 0, len(entries)),
	}

	for _, entry := range entries {
		r := e.verifyEntry(entry)
		switch r.Status {
		case StatusMatch:
			result.Matched++
		case StatusMismatch:
			result.Mismatched++
		default:
			result.Failed++
		}
		result.Results = append(result.Results, r)
	}

	e.log.Debug("verified tracked files",
		"matched", result.Matched, "mismatched", result.Mismatched, "failed", result.Failed)
	return result
}

func (e *Engine) verifyEntry(entry state.Entry) VerifyResult {
	result := VerifyResult{
		Path:         entry.Path,
		StoredDigest: entry.Digest,
	}

	current, err := e.hasher.HashFile(entry.Path)
	if err != nil {
		result.Status = StatusError
		result.Err = err
		result.Error = err.Error()
		e.log.Debug("verify failed", "path", entry.Path, "error", err)
		return result
	}

	result.CurrentDigest = current
	if current == entry.Digest {
		result.Status = StatusMatch
	} else {
		result.Status = StatusMismatch
		e.log.Debug("digest mismatch", "path", entry.Path, "stored", entry.Digest, "current", current)
	}
	return result
}
