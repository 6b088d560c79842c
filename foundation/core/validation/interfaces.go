// File: interfaces.go
// Title: Core Validation Interfaces and Types
// Description: Defines the Validator interface, the ValidationResult and
//              ValidationError types and the conversion of a failed result
//              into a structured error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial validation interfaces implementation
// - 2026-10-18 v0.2.0: Error codes unified with the error package

package validation

import (
	"context"
	"fmt"
	"strings"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
)

// Validator defines the interface for all validation functions
type Validator interface {
	// Validate performs validation on a value and returns structured result
	Validate(value interface{}) ValidationResult

	// ValidateWithContext performs validation with a context for cancellation
	ValidateWithContext(ctx context.Context, value interface{}) ValidationResult
}

// ValidatorFunc is a function type that implements the Validator interface
type ValidatorFunc func(value interface{}) ValidationResult

// Validate implements the Validator interface for ValidatorFunc
func (f ValidatorFunc) Validate(value interface{}) ValidationResult {
	return f(value)
}

// ValidateWithContext implements the Validator interface for ValidatorFunc
func (f ValidatorFunc) ValidateWithContext(_ context.Context, value interface{}) ValidationResult {
	return f(value)
}

// ValidationResult represents the result of a validation operation
type ValidationResult struct {
	Valid   bool                   `json:"valid"`
	Errors  []ValidationError      `json:"errors,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ValidationError represents a single validation failure
type ValidationError struct {
	Code       mdwerror.Code          `json:"code"`
	Field      string                 `json:"field,omitempty"`
	Constraint string                 `json:"constraint,omitempty"`
	Message    string                 `json:"message"`
	Value      interface{}            `json:"value,omitempty"`
	Expected   interface{}            `json:"expected,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
}

// NewValidationResult creates a successful validation result
func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// NewValidationError creates a failed validation result with a single error
func NewValidationError(code mdwerror.Code, message string, value interface{}) ValidationResult {
	return ValidationResult{
		Valid: false,
		Errors: []ValidationError{{
			Code:    code,
			Message: message,
			Value:   value,
		}},
	}
}

// AddError adds an error to an existing validation result
func (r *ValidationResult) AddError(err ValidationError) *ValidationResult {
	r.Valid = false
	r.Errors = append(r.Errors, err)
	return r
}

// WithContext adds context information to the validation result
func (r *ValidationResult) WithContext(key string, value interface{}) *ValidationResult {
	if r.Context == nil {
		r.Context = make(map[string]interface{})
	}
	r.Context[key] = value
	return r
}

// FirstError returns the first validation error, or nil if validation passed
func (r ValidationResult) FirstError() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// ErrorMessages returns all error messages as a slice of strings
func (r ValidationResult) ErrorMessages() []string {
	messages := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		messages[i] = err.Message
	}
	return messages
}

// HasError checks if the result contains a specific error code
func (r ValidationResult) HasError(code mdwerror.Code) bool {
	for _, err := range r.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// ToError converts the first error of a failed result into a *mdwerror.Error.
// Returns nil if validation passed.
func (r ValidationResult) ToError() error {
	if r.Valid {
		return nil
	}

	if len(r.Errors) == 0 {
		return mdwerror.New("validation failed").
			WithCode(mdwerror.CodeInvalidInput)
	}

	first := r.Errors[0]
	message := first.Message
	if first.Field != "" {
		message = first.Field + ": " + message
	}

	err := mdwerror.New(message).
		WithCode(first.Code).
		WithDetail("value", first.Value)

	if first.Field != "" {
		err = err.WithDetail("field", first.Field)
	}
	if first.Constraint != "" {
		err = err.WithDetail("constraint", first.Constraint)
	}
	if first.Expected != nil {
		err = err.WithDetail("expected", first.Expected)
	}
	for key, value := range first.Context {
		err = err.WithDetail(key, value)
	}

	if len(r.Errors) > 1 {
		err = err.WithDetail("totalErrors", len(r.Errors))
		err = err.WithDetail("allMessages", r.ErrorMessages())
	}

	return err
}

// String returns a human-readable representation of the validation result
func (r ValidationResult) String() string {
	if r.Valid {
		return "ValidationResult{valid: true}"
	}

	parts := []string{"ValidationResult{valid: false"}
	if len(r.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("errors: %d", len(r.Errors)))
		first := r.Errors[0]
		parts = append(parts, fmt.Sprintf("first: %s", first.Message))
		if first.Field != "" {
			parts = append(parts, fmt.Sprintf("field: %s", first.Field))
		}
	}
	return strings.Join(parts, ", ") + "}"
}

// String returns a human-readable representation of a validation error
func (e ValidationError) String() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field:%s", e.Field))
	}
	parts = append(parts, fmt.Sprintf("code:%s", e.Code))
	parts = append(parts, fmt.Sprintf("message:%s", e.Message))
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value:%v", e.Value))
	}
	if e.Expected != nil {
		parts = append(parts, fmt.Sprintf("expected:%v", e.Expected))
	}

	return fmt.Sprintf("ValidationError{%s}", strings.Join(parts, ", "))
}

// Combine merges multiple validation results into a single result
func Combine(results ...ValidationResult) ValidationResult {
	combined := NewValidationResult()

	for _, result := range results {
		if !result.Valid {
			combined.Valid = false
			combined.Errors = append(combined.Errors, result.Errors...)
		}
		for key, value := range result.Context {
			combined.WithContext(key, value)
		}
	}

	return combined
}
