// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that loggers can pick an
//              appropriate level and callers can decide whether to skip,
//              log or abort.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-18 v0.2.0: Severity mapping for record codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates bad input that the caller can skip or correct
	// Examples: a row that fails validation, an unknown field name
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error such as unreadable files or a broken store
	SeverityHigh

	// SeverityCritical indicates an error that makes the program unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level returns the numeric level of the severity (0-3)
func (s Severity) Level() int {
	return int(s)
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeIOError, CodeStorageError, CodeConfigError:
		return SeverityHigh

	case CodeInvalidConfig, CodeUnknownFormat:
		return SeverityMedium

	case CodeInvalidInput, CodeNotFound,
		CodeTypeMismatch, CodeConstraintViolation, CodeUnknownField,
		CodeDuplicateField, CodeMissingField, CodeArityMismatch,
		CodeParseFailure:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
