// File: codes_test.go
// Title: Error Code Tests
// Description: Tests for code validity and categorization.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Record code categories

package error

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code     Code
		category string
		record   bool
	}{
		{CodeTypeMismatch, "validation", true},
		{CodeConstraintViolation, "validation", true},
		{CodeUnknownField, "structure", true},
		{CodeDuplicateField, "structure", true},
		{CodeMissingField, "structure", true},
		{CodeArityMismatch, "structure", true},
		{CodeParseFailure, "decoding", true},
		{CodeUnknownFormat, "decoding", true},
		{CodeInvalidConfig, "configuration", false},
		{CodeStorageError, "io", false},
		{CodeUnknown, "generic", false},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.True(t, tt.code.IsValid())
			assert.Equal(t, tt.category, tt.code.Category())
			assert.Equal(t, tt.record, tt.code.IsRecordError())
		})
	}
}

func TestCodeIsValidRejectsUnknown(t *testing.T) {
	assert.False(t, Code("NOPE").IsValid())
	assert.Equal(t, "generic", Code("NOPE").Category())
}
