// File: jsonschema.go
// Title: JSON Schema Export
// Description: Derives a JSON Schema document from a record schema and
//              compiles a shape-only variant with qri-io/jsonschema so that JSON
//              input can be checked structurally before it is decoded.
//              Only the built-in constraints have a JSON Schema form; custom
//              constraints are still enforced when the record is built.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
// - 2026-10-18 v0.1.1: Document validation restricted to shape

package record

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/qri-io/jsonschema"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/validation"
)

const jsonSchemaDraft = "http://json-schema.org/draft-07/schema#"

// JSONSchemaDocument returns the JSON Schema of the record type as a
// generic document. Every field is required and no other properties are
// allowed.
func (s *Schema) JSONSchemaDocument() map[string]interface{} {
	properties := make(map[string]interface{}, len(s.specs))
	for _, spec := range s.specs {
		properties[spec.Name()] = fieldSchema(spec)
	}

	return map[string]interface{}{
		"$schema":              jsonSchemaDraft,
		"title":                s.name,
		"type":                 "object",
		"properties":           properties,
		"required":             s.FieldNames(),
		"additionalProperties": false,
	}
}

// JSONSchema returns the indented JSON Schema document
func (s *Schema) JSONSchema() ([]byte, error) {
	data, err := json.MarshalIndent(s.JSONSchemaDocument(), "", "  ")
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("%s: cannot encode JSON schema", s.name)).
			WithCode(mdwerror.CodeInternal).
			WithOperation("record.JSONSchema")
	}
	return data, nil
}

func fieldSchema(spec *validation.Spec) map[string]interface{} {
	fs := map[string]interface{}{}
	switch spec.Kind() {
	case validation.KindInteger:
		fs["type"] = "integer"
	case validation.KindFloat:
		fs["type"] = "number"
	default:
		fs["type"] = "string"
	}

	for _, c := range spec.Constraints() {
		name := c.Name()
		switch {
		case name == validation.ConstraintNonNegative:
			fs["minimum"] = 0
		case name == validation.ConstraintNonEmpty:
			fs["minLength"] = 1
		case strings.HasPrefix(name, validation.ConstraintMin+":"):
			if min, err := strconv.ParseFloat(strings.TrimPrefix(name, validation.ConstraintMin+":"), 64); err == nil {
				fs["minimum"] = min
			}
		}
	}
	return fs
}

// DocumentValidator checks the shape of raw JSON documents against a
// record schema: the document is an object, every declared field is
// present and no other key appears. Field values are left to the field
// specs so that they report the same codes as any other write path.
type DocumentValidator struct {
	schema   *Schema
	compiled *jsonschema.Schema
}

// shapeDocument is the JSON Schema of the record type without any value
// rules
func (s *Schema) shapeDocument() map[string]interface{} {
	properties := make(map[string]interface{}, len(s.specs))
	for _, name := range s.names {
		properties[name] = map[string]interface{}{}
	}
	return map[string]interface{}{
		"title":                s.name,
		"type":                 "object",
		"properties":           properties,
		"required":             s.FieldNames(),
		"additionalProperties": false,
	}
}

// NewDocumentValidator compiles the shape schema of s. No draft URI is set
// so no meta-schema is ever fetched.
func NewDocumentValidator(s *Schema) (*DocumentValidator, error) {
	data, err := json.Marshal(s.shapeDocument())
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("%s: cannot encode JSON schema", s.name)).
			WithCode(mdwerror.CodeInternal).
			WithOperation("record.NewDocumentValidator")
	}

	dv := &DocumentValidator{
		schema:   s,
		compiled: &jsonschema.Schema{},
	}
	if err := json.Unmarshal(data, dv.compiled); err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("%s: reading JSON schema failed", s.name)).
			WithCode(mdwerror.CodeInternal).
			WithOperation("record.NewDocumentValidator")
	}
	return dv, nil
}

// ValidateBytes validates the shape of one JSON document. Malformed JSON is
// a PARSE_FAILURE, an undeclared key UNKNOWN_FIELD and an absent field
// MISSING_FIELD, each with the field detail set. Anything else, such as
// an array instead of an object, is INVALID_INPUT.
func (v *DocumentValidator) ValidateBytes(ctx context.Context, buf []byte) error {
	name := v.schema.name

	errs, err := v.compiled.ValidateBytes(ctx, buf)
	if err != nil {
		return mdwerror.Wrap(err, fmt.Sprintf("%s: malformed JSON document", name)).
			WithCode(mdwerror.CodeParseFailure).
			WithOperation("record.ValidateBytes").
			WithDetail("schema", name)
	}
	if len(errs) == 0 {
		return nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf, &doc); err == nil {
		unknown := make([]string, 0)
		for key := range doc {
			if !v.schema.Has(key) {
				unknown = append(unknown, key)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return unknownFieldError(name, unknown[0], "record.ValidateBytes").
				WithDetail("unknown", unknown)
		}
		for _, field := range v.schema.names {
			if _, ok := doc[field]; !ok {
				return missingFieldError(name, field, "record.ValidateBytes")
			}
		}
	}

	first := errs[0]
	return mdwerror.New(fmt.Sprintf("%s: %s", name, first.Error())).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("record.ValidateBytes").
		WithDetail("schema", name).
		WithDetail("path", first.PropertyPath).
		WithDetail("violations", len(errs))
}
