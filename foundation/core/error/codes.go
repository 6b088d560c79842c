// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures raised by
//              the record engine, the ingestion helpers and the CLI plumbing.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-18 v0.2.0: Record, decode and storage codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Record validation
	CodeTypeMismatch        Code = "TYPE_MISMATCH"
	CodeConstraintViolation Code = "CONSTRAINT_VIOLATION"
	CodeUnknownField        Code = "UNKNOWN_FIELD"
	CodeDuplicateField      Code = "DUPLICATE_FIELD"
	CodeMissingField        Code = "MISSING_FIELD"
	CodeArityMismatch       Code = "ARITY_MISMATCH"

	// Decoding
	CodeParseFailure  Code = "PARSE_FAILURE"
	CodeUnknownFormat Code = "UNKNOWN_FORMAT"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeIOError       Code = "IO_ERROR"
	CodeStorageError  Code = "STORAGE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeTypeMismatch, CodeConstraintViolation, CodeUnknownField,
		CodeDuplicateField, CodeMissingField, CodeArityMismatch,
		CodeParseFailure, CodeUnknownFormat,
		CodeConfigError, CodeInvalidConfig, CodeIOError, CodeStorageError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeTypeMismatch, CodeConstraintViolation:
		return "validation"
	case CodeUnknownField, CodeDuplicateField, CodeMissingField, CodeArityMismatch:
		return "structure"
	case CodeParseFailure, CodeUnknownFormat:
		return "decoding"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeIOError, CodeStorageError:
		return "io"
	default:
		return "generic"
	}
}

// IsRecordError reports whether the code belongs to the record engine
// (validation, structure or decoding) rather than to the environment.
func (c Code) IsRecordError() bool {
	switch c.Category() {
	case "validation", "structure", "decoding":
		return true
	default:
		return false
	}
}
