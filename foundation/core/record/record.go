// File: record.go
// Title: Validated Record
// Description: A Record holds one value per schema field. Reads and writes
//              are restricted to declared fields and every write is checked
//              against the field's spec before it is committed.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/validation"
)

// Record is a value of a Schema. A Record is not safe for concurrent
// mutation; callers that share one across goroutines must synchronize.
type Record struct {
	schema *Schema
	values []interface{}
}

// Schema returns the record's schema
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the current value of the named field
func (r *Record) Get(name string) (interface{}, error) {
	i, ok := r.schema.index[name]
	if !ok {
		return nil, unknownFieldError(r.schema.name, name, "record.Get")
	}
	return r.values[i], nil
}

// Int returns the named integer field
func (r *Record) Int(name string) (int, error) {
	v, err := r.typed(name, validation.KindInteger, "record.Int")
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// Float returns the named float field
func (r *Record) Float(name string) (float64, error) {
	v, err := r.typed(name, validation.KindFloat, "record.Float")
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// Str returns the named string field
func (r *Record) Str(name string) (string, error) {
	v, err := r.typed(name, validation.KindString, "record.Str")
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Record) typed(name string, kind validation.Kind, operation string) (interface{}, error) {
	i, ok := r.schema.index[name]
	if !ok {
		return nil, unknownFieldError(r.schema.name, name, operation)
	}
	if declared := r.schema.specs[i].Kind(); declared != kind {
		return nil, mdwerror.New(fmt.Sprintf("%s.%s is %s, not %s", r.schema.name, name, declared, kind)).
			WithCode(mdwerror.CodeTypeMismatch).
			WithOperation(operation).
			WithDetail("schema", r.schema.name).
			WithDetail("field", name).
			WithDetail("expected", kind.String()).
			WithDetail("actual", declared.String())
	}
	return r.values[i], nil
}

// Set validates value against the field's spec and stores it. On failure
// the record keeps its previous value.
func (r *Record) Set(name string, value interface{}) error {
	i, ok := r.schema.index[name]
	if !ok {
		return unknownFieldError(r.schema.name, name, "record.Set")
	}

	checked, err := r.schema.specs[i].Check(value)
	if err != nil {
		return fieldError(r.schema.name, err, "record.Set")
	}

	r.values[i] = checked
	return nil
}

// Values returns a copy of the field values in declaration order
func (r *Record) Values() []interface{} {
	return append([]interface{}(nil), r.values...)
}

// Map returns the field values keyed by field name
func (r *Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.values))
	for i, name := range r.schema.names {
		m[name] = r.values[i]
	}
	return m
}

// Clone returns an independent copy of the record
func (r *Record) Clone() *Record {
	return &Record{schema: r.schema, values: r.Values()}
}

// Equal reports whether both records share a schema and hold equal values
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.schema != other.schema {
		return false
	}
	for i := range r.values {
		if r.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// String renders the record as TypeName(field=value, ...)
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.schema.name)
	sb.WriteByte('(')
	for i, name := range r.schema.names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(Repr(r.values[i]))
	}
	sb.WriteByte(')')
	return sb.String()
}

// MarshalJSON encodes the record as a JSON object in field order
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.schema.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, mdwerror.Wrap(err, fmt.Sprintf("%s.%s: cannot encode value", r.schema.name, name)).
				WithCode(mdwerror.CodeInternal).
				WithOperation("record.MarshalJSON")
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
