package state

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyPath is returned by NormalizePath for blank input.
	ErrEmptyPath = errors.New("empty path")

	// ErrInvalidPath is returned for paths the database document cannot
	// represent, such as names that are not valid UTF-8.
	ErrInvalidPath = errors.New("invalid path")
)

// NormalizePath canonicalizes a user-provided path into a database key.
// The result is absolute and cleaned, so "./a.txt", "a.txt" and "dir/../a.txt"
// all map to the same entry.
func NormalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", ErrEmptyPath
	}
	if !utf8.ValidString(p) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidPath, p)
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %q: %w", p, err)
	}
	return filepath.Clean(abs), nil
}
