// File: timer.go
// Title: Operation Timer
// Description: Measures how long an operation (for example decoding a file)
//              took and logs the result with timing fields.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Reduced to Stop/StopWithError/StopWithResult

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// IsRunning returns true if the timer has not been stopped
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

// Stop stops the timer and logs the elapsed time. A second call is a no-op
// and returns 0.
func (t *Timer) Stop() time.Duration {
	return t.finish(t.level, t.operation+" completed", nil)
}

// StopWithError stops the timer and logs err at error level
func (t *Timer) StopWithError(err error) time.Duration {
	t.fields["success"] = false
	return t.finish(LevelError, t.operation+" failed", err)
}

// StopWithResult stops the timer and logs the outcome; failures are raised
// to at least warn level
func (t *Timer) StopWithResult(success bool, result interface{}) time.Duration {
	t.fields["success"] = success
	if result != nil {
		t.fields["result"] = result
	}

	level := t.level
	message := t.operation + " completed successfully"
	if !success {
		message = t.operation + " completed with errors"
		if level < LevelWarn {
			level = LevelWarn
		}
	}
	return t.finish(level, message, nil)
}

func (t *Timer) finish(level Level, message string, err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	t.fields["operation"] = t.operation
	t.fields["duration_ms"] = float64(elapsed.Nanoseconds()) / 1e6

	if t.logger != nil {
		t.logger.log(level, message, err, t.fields)
	}
	return elapsed
}
