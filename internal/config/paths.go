// Package config manages hashguard configuration and filesystem paths.
//
// The default root is ~/.hashguard/ and can be moved with HASHGUARD_ROOT. The
// root holds the hash database and an optional config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DatabaseFile is the default name of the hash database document.
	DatabaseFile = "integrity_hashes.json"

	// EnvRoot names the environment variable that moves the root directory.
	EnvRoot = "HASHGUARD_ROOT"
)

// Paths contains all the filesystem paths used by hashguard.
type Paths struct {
	// Root is the base directory for all hashguard data (default: ~/.hashguard)
	Root string

	// Database is the hash database document
	Database string

	// Config is the path to the optional config file
	Config string
}

// DefaultPaths returns the default paths for hashguard.
// Paths can be overridden with environment variables:
// - HASHGUARD_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(EnvRoot)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".hashguard")
	}

	return &Paths{
		Root:     root,
		Database: filepath.Join(root, DatabaseFile),
		Config:   filepath.Join(root, "config.yaml"),
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		filepath.Dir(p.Database),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
