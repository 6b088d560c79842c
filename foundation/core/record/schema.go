// File: schema.go
// Title: Record Schema
// Description: Schema definition, field lookup and record construction.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package record

import (
	"fmt"
	"sort"
	"strings"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/validation"
)

// Schema is the ordered declaration of a record type's fields. Declaration
// order is constructor argument order and row column order. A Schema is
// never modified after Define and may be shared freely.
type Schema struct {
	name  string
	specs []*validation.Spec
	names []string
	index map[string]int
}

// Define creates a schema from field specs in declaration order
func Define(typeName string, specs ...*validation.Spec) (*Schema, error) {
	if strings.TrimSpace(typeName) == "" {
		return nil, mdwerror.New("record type name cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("record.Define")
	}

	s := &Schema{
		name:  typeName,
		specs: make([]*validation.Spec, 0, len(specs)),
		names: make([]string, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}

	for i, spec := range specs {
		if spec == nil {
			return nil, mdwerror.New(fmt.Sprintf("%s: field spec %d is nil", typeName, i)).
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("record.Define").
				WithDetail("schema", typeName)
		}
		name := spec.Name()
		if strings.TrimSpace(name) == "" {
			return nil, mdwerror.New(fmt.Sprintf("%s: field %d has an empty name", typeName, i)).
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("record.Define").
				WithDetail("schema", typeName)
		}
		if _, dup := s.index[name]; dup {
			return nil, mdwerror.New(fmt.Sprintf("%s: duplicate field %q", typeName, name)).
				WithCode(mdwerror.CodeDuplicateField).
				WithOperation("record.Define").
				WithDetail("schema", typeName).
				WithDetail("field", name)
		}
		s.index[name] = len(s.specs)
		s.specs = append(s.specs, spec)
		s.names = append(s.names, name)
	}

	return s, nil
}

// MustDefine is like Define but panics on error. Intended for package level
// schema declarations.
func MustDefine(typeName string, specs ...*validation.Spec) *Schema {
	s, err := Define(typeName, specs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the record type name
func (s *Schema) Name() string {
	return s.name
}

// NumFields returns the number of declared fields
func (s *Schema) NumFields() int {
	return len(s.specs)
}

// FieldNames returns the field names in declaration order
func (s *Schema) FieldNames() []string {
	return append([]string(nil), s.names...)
}

// Has reports whether name is a declared field
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Field returns the spec at position i
func (s *Schema) Field(i int) *validation.Spec {
	return s.specs[i]
}

// Spec returns the spec of the named field
func (s *Schema) Spec(name string) (*validation.Spec, error) {
	i, err := s.IndexOf(name)
	if err != nil {
		return nil, err
	}
	return s.specs[i], nil
}

// KindOf returns the underlying kind of the named field
func (s *Schema) KindOf(name string) (validation.Kind, error) {
	i, ok := s.index[name]
	if !ok {
		return validation.KindString, unknownFieldError(s.name, name, "record.KindOf")
	}
	return s.specs[i].Kind(), nil
}

// IndexOf returns the position of the named field
func (s *Schema) IndexOf(name string) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return -1, unknownFieldError(s.name, name, "record.IndexOf")
	}
	return i, nil
}

// Construct builds a record from values aligned to field order. Values are
// validated in order and the first invalid field is reported.
func (s *Schema) Construct(values ...interface{}) (*Record, error) {
	if len(values) != len(s.specs) {
		return nil, mdwerror.New(fmt.Sprintf("%s: Expected %d arguments, got %d", s.name, len(s.specs), len(values))).
			WithCode(mdwerror.CodeArityMismatch).
			WithOperation("record.Construct").
			WithDetail("schema", s.name).
			WithDetail("expected", len(s.specs)).
			WithDetail("actual", len(values))
	}

	checked := make([]interface{}, len(values))
	for i, spec := range s.specs {
		v, err := spec.Check(values[i])
		if err != nil {
			return nil, fieldError(s.name, err, "record.Construct")
		}
		checked[i] = v
	}

	return &Record{schema: s, values: checked}, nil
}

// ConstructFromNamed builds a record from a name to value mapping. Every
// declared field is required; names outside the schema are rejected.
func (s *Schema) ConstructFromNamed(values map[string]interface{}) (*Record, error) {
	unknown := make([]string, 0)
	for name := range values {
		if !s.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, unknownFieldError(s.name, unknown[0], "record.ConstructFromNamed").
			WithDetail("unknown", unknown)
	}

	ordered := make([]interface{}, len(s.specs))
	for i, name := range s.names {
		v, ok := values[name]
		if !ok {
			return nil, missingFieldError(s.name, name, "record.ConstructFromNamed")
		}
		ordered[i] = v
	}

	return s.Construct(ordered...)
}

// String describes the schema, e.g. "Stock(name:str, shares:int[non_negative])"
func (s *Schema) String() string {
	parts := make([]string, len(s.specs))
	for i, spec := range s.specs {
		parts[i] = spec.String()
	}
	return s.name + "(" + strings.Join(parts, ", ") + ")"
}
