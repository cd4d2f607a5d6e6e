// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging sets up the diagnostic log for bookchat.
//
// The terminal belongs to the chat UI, so entries are written as JSON lines
// to a file (default ~/.bookchat/bookchat.log) instead of stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFileName is the log file created inside the config directory.
const DefaultFileName = "bookchat.log"

// Options control where and how much is logged.
type Options struct {
	// Path of the log file. Empty means <Dir>/bookchat.log.
	Path string
	// Dir is used when Path is empty.
	Dir string
	// Level is a zerolog level name ("debug", "info", ...).
	Level string
}

// Logger is a zerolog.Logger bound to an open file.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Open creates (or appends to) the log file described by opts.
func Open(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	path := opts.Path
	if path == "" {
		if opts.Dir == "" {
			return nil, fmt.Errorf("no log path or directory given")
		}
		path = filepath.Join(opts.Dir, DefaultFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		Logger: New(f, level),
		closer: f,
	}, nil
}

// New builds a logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "bookchat").
		Logger()
}

// ParseLevel converts a level name. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
