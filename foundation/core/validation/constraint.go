// File: constraint.go
// Title: Field Constraints
// Description: Named predicates attached to a field after its kind check.
//              Constraints of one field compose conjunctively and are
//              evaluated in declaration order.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package validation

import (
	"context"
	"fmt"
	"strconv"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
)

// Constraint names for the built-in checks
const (
	ConstraintType        = "type"
	ConstraintNonNegative = "non_negative"
	ConstraintNonEmpty    = "non_empty"
	ConstraintMin         = "min"
)

// Constraint is a named predicate plus the reason reported when it fails.
// The zero value is not usable; build constraints with the functions below.
type Constraint struct {
	name      string
	reason    string
	code      mdwerror.Code
	expected  interface{}
	predicate func(value interface{}) bool
}

// NewConstraint creates a custom constraint. A failing predicate is reported
// as CONSTRAINT_VIOLATION with the given reason.
func NewConstraint(name, reason string, predicate func(value interface{}) bool) Constraint {
	return Constraint{
		name:      name,
		reason:    reason,
		code:      mdwerror.CodeConstraintViolation,
		predicate: predicate,
	}
}

// TypeCheck requires the value to have exactly the given kind
func TypeCheck(kind Kind) Constraint {
	return Constraint{
		name:      ConstraintType,
		reason:    "Expected " + kind.String(),
		code:      mdwerror.CodeTypeMismatch,
		expected:  kind.String(),
		predicate: kind.Matches,
	}
}

// RangeCheck requires a numeric value >= min
func RangeCheck(min float64) Constraint {
	bound := strconv.FormatFloat(min, 'g', -1, 64)
	return Constraint{
		name:     ConstraintMin + ":" + bound,
		reason:   "Expected >= " + bound,
		code:     mdwerror.CodeConstraintViolation,
		expected: ">= " + bound,
		predicate: func(value interface{}) bool {
			f, ok := toFloat64(value)
			return ok && f >= min
		},
	}
}

// NonNegative requires a numeric value >= 0
func NonNegative() Constraint {
	c := RangeCheck(0)
	c.name = ConstraintNonNegative
	return c
}

// NonEmptyCheck requires a string (or collection) with at least one element
func NonEmptyCheck() Constraint {
	return Constraint{
		name:   ConstraintNonEmpty,
		reason: "Must be non-empty",
		code:   mdwerror.CodeConstraintViolation,
		predicate: func(value interface{}) bool {
			return valueLength(value) > 0
		},
	}
}

// Name returns the constraint name
func (c Constraint) Name() string {
	return c.name
}

// Reason returns the failure message
func (c Constraint) Reason() string {
	return c.reason
}

// Code returns the error code reported on failure
func (c Constraint) Code() mdwerror.Code {
	return c.code
}

// Holds evaluates the predicate
func (c Constraint) Holds(value interface{}) bool {
	return c.predicate != nil && c.predicate(value)
}

// Validate implements Validator
func (c Constraint) Validate(value interface{}) ValidationResult {
	if c.Holds(value) {
		return NewValidationResult()
	}

	verr := ValidationError{
		Code:       c.code,
		Constraint: c.name,
		Message:    c.reason,
		Value:      value,
		Expected:   c.expected,
	}
	if c.code == mdwerror.CodeTypeMismatch {
		verr.Message = fmt.Sprintf("%s, got %s", c.reason, KindOf(value))
		verr.Context = map[string]interface{}{"actual": KindOf(value)}
	}

	result := NewValidationResult()
	result.AddError(verr)
	return result
}

// ValidateWithContext implements Validator
func (c Constraint) ValidateWithContext(_ context.Context, value interface{}) ValidationResult {
	return c.Validate(value)
}

// String returns the constraint name
func (c Constraint) String() string {
	return c.name
}
