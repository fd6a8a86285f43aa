// Package logging holds the process logger. Records go to stderr so they never
// interleave with command output on stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	level = new(slog.LevelVar)
	out   = &switchWriter{w: os.Stderr}

	logger = slog.New(
		slog.NewTextHandler(
			out, &slog.HandlerOptions{
				Level: level,
			},
		),
	)
)

// switchWriter forwards to a writer that can be replaced while loggers
// built on it are in use.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	return logger
}

// SetOutput redirects log records to w, including records from loggers
// obtained earlier.
func SetOutput(w io.Writer) {
	out.set(w)
}

// SetDebug switches between debug and info level.
func SetDebug(enable bool) {
	if enable {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// SetLevel parses one of debug, info, warn or error. Unknown names select info.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// Discard returns a logger that drops every record, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
