// ============================================================================
// recordkit - declarative records for tabular data
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating the CLI's foundation loggers
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	mdwlog "github.com/msto63/recordkit/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: json, text, console or logfmt (default: text)
	Format string

	// Primary output (default: stderr)
	Output io.Writer

	// Additional outputs, e.g. an opened log file
	AdditionalOutputs []io.Writer

	// Caller information on every entry
	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "text",
	}
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:        parseLevel(cfg.Level),
		Format:       parseFormat(cfg.Format),
		Output:       output,
		Name:         cfg.Name,
		EnableCaller: cfg.EnableCaller,
	})
}

// OpenLogFile opens path for appending, creating parent directories.
// The caller closes the returned file.
func OpenLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, mdwerror.Wrap(err, "failed to create log directory").
				WithCode(mdwerror.CodeIOError).
				WithDetail("path", dir)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to open log file").
			WithCode(mdwerror.CodeIOError).
			WithDetail("path", path)
	}
	return f, nil
}

// parseLevel converts a string level to mdwlog.Level, falling back to warn
func parseLevel(level string) mdwlog.Level {
	if level == "" {
		return mdwlog.LevelWarn
	}
	parsed, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelWarn
	}
	return parsed
}

// parseFormat converts a string format to mdwlog.Format, falling back to text
func parseFormat(format string) mdwlog.Format {
	if format == "" {
		return mdwlog.FormatText
	}
	parsed, err := mdwlog.ParseFormat(format)
	if err != nil {
		return mdwlog.FormatText
	}
	return parsed
}
