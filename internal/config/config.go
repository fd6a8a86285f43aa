package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/hashguard/internal/hash"
)

// LogLevel names a logging verbosity accepted in config.yaml.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config represents the optional config.yaml in the hashguard root.
type Config struct {
	// Database overrides the hash database location; relative paths are
	// resolved against the root directory
	Database string `yaml:"database"`

	// LogLevel sets the minimum level of log records written to stderr
	LogLevel LogLevel `yaml:"log_level"`

	// ChunkSize is the read buffer size used while hashing, in bytes
	ChunkSize int `yaml:"chunk_size"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Database = os.ExpandEnv(cfg.Database)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = LogInfo
	}
	c.LogLevel = LogLevel(strings.ToLower(string(c.LogLevel)))
	if c.ChunkSize == 0 {
		c.ChunkSize = hash.DefaultChunkSize
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogDebug, LogInfo, LogWarn, LogError:
		// valid
	default:
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}

	return nil
}

// Apply folds the config file into p, returning the adjusted paths.
func (c *Config) Apply(p Paths) Paths {
	if c.Database == "" {
		return p
	}
	if filepath.IsAbs(c.Database) {
		p.Database = filepath.Clean(c.Database)
	} else {
		p.Database = filepath.Join(p.Root, c.Database)
	}
	return p
}
