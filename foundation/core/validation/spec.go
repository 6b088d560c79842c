// File: spec.go
// Title: Field Specs
// Description: A Spec describes one field: its name, underlying kind and
//              ordered constraints. The composite validators of the original
//              exercise set (PositiveInteger, PositiveFloat, NonEmptyString)
//              are plain constructor functions here.
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

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
)

// Spec validates the values of a single named field. A Spec is immutable
// after NewSpec and safe to share between goroutines.
type Spec struct {
	name        string
	kind        Kind
	constraints []Constraint
	chain       *ValidatorChain
}

// NewSpec creates a field spec. The kind check always runs first, followed
// by constraints in the order given.
func NewSpec(name string, kind Kind, constraints ...Constraint) *Spec {
	s := &Spec{
		name:        name,
		kind:        kind,
		constraints: append([]Constraint(nil), constraints...),
	}

	s.chain = NewValidatorChain(name).StopOnFirstError(true).Add(TypeCheck(kind))
	for _, c := range s.constraints {
		s.chain.Add(c)
	}
	return s
}

// String declares a str field
func String(name string) *Spec {
	return NewSpec(name, KindString)
}

// Integer declares an int field
func Integer(name string) *Spec {
	return NewSpec(name, KindInteger)
}

// Float declares a float field
func Float(name string) *Spec {
	return NewSpec(name, KindFloat)
}

// PositiveInteger declares an int field that must be >= 0
func PositiveInteger(name string) *Spec {
	return NewSpec(name, KindInteger, NonNegative())
}

// PositiveFloat declares a float field that must be >= 0
func PositiveFloat(name string) *Spec {
	return NewSpec(name, KindFloat, NonNegative())
}

// NonEmptyString declares a str field that must not be empty
func NonEmptyString(name string) *Spec {
	return NewSpec(name, KindString, NonEmptyCheck())
}

// Name returns the field name
func (s *Spec) Name() string {
	return s.name
}

// Kind returns the underlying kind
func (s *Spec) Kind() Kind {
	return s.kind
}

// Constraints returns a copy of the constraints after the kind check
func (s *Spec) Constraints() []Constraint {
	return append([]Constraint(nil), s.constraints...)
}

// Validate implements Validator. Errors carry the field name.
func (s *Spec) Validate(value interface{}) ValidationResult {
	return s.ValidateWithContext(context.Background(), value)
}

// ValidateWithContext implements Validator
func (s *Spec) ValidateWithContext(ctx context.Context, value interface{}) ValidationResult {
	result := s.chain.ValidateWithContext(ctx, value)
	for i := range result.Errors {
		result.Errors[i].Field = s.name
	}
	return result
}

// Check validates value and returns it unchanged. On failure the error is a
// *mdwerror.Error with code TYPE_MISMATCH or CONSTRAINT_VIOLATION and the
// details field, value and constraint.
func (s *Spec) Check(value interface{}) (interface{}, error) {
	result := s.Validate(value)
	if result.Valid {
		return value, nil
	}
	err := result.ToError()
	if mdwErr, ok := err.(*mdwerror.Error); ok {
		mdwErr.WithOperation("validation.Check")
	}
	return nil, err
}

// Parse converts a text token with the kind's parse rule. It does not run
// constraints; a failed conversion is a PARSE_FAILURE error.
func (s *Spec) Parse(token string) (interface{}, error) {
	v, err := s.kind.Parse(token)
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("%s: cannot parse %q as %s", s.name, token, s.kind)).
			WithCode(mdwerror.CodeParseFailure).
			WithOperation("validation.Parse").
			WithDetail("field", s.name).
			WithDetail("token", token).
			WithDetail("expected", s.kind.String())
	}
	return v, nil
}

// ParseAndCheck parses a token and validates the result
func (s *Spec) ParseAndCheck(token string) (interface{}, error) {
	v, err := s.Parse(token)
	if err != nil {
		return nil, err
	}
	return s.Check(v)
}

// String describes the spec, e.g. "shares:int[non_negative]"
func (s *Spec) String() string {
	out := s.name + ":" + s.kind.String()
	if len(s.constraints) > 0 {
		out += "["
		for i, c := range s.constraints {
			if i > 0 {
				out += ","
			}
			out += c.name
		}
		out += "]"
	}
	return out
}
