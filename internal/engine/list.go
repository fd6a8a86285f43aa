package engine

import (
	"context"
	"iter"

	"github.com/danieljhkim/hashguard/internal/state"
)

// List returns the tracked paths in listing order. The sequence iterates a
// snapshot taken when List is called, so it can be ranged over repeatedly and
// is unaffected by later Add or Remove calls.
func (e *Engine) List(ctx context.Context) iter.Seq[string] {
	paths := e.db.Paths()
	return func(yield func(string) bool) {
		for _, p := range paths {
			if !yield(p) {
				return
			}
		}
	}
}

// Entries returns a snapshot of all tracked entries in listing order.
func (e *Engine) Entries(ctx context.Context) []state.Entry {
	return e.db.Entries()
}

// Len returns the number of tracked files.
func (e *Engine) Len() int {
	return e.db.Len()
}
