// File: errors.go
// Title: Record Error Constructors
// Description: Builds the structured errors shared by schemas, records and
//              the document validator.
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

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
)

func unknownFieldError(schema, field, operation string) *mdwerror.Error {
	return mdwerror.New(fmt.Sprintf("%s has no field %q", schema, field)).
		WithCode(mdwerror.CodeUnknownField).
		WithOperation(operation).
		WithDetail("schema", schema).
		WithDetail("field", field)
}

func missingFieldError(schema, field, operation string) *mdwerror.Error {
	return mdwerror.New(fmt.Sprintf("%s: missing field %q", schema, field)).
		WithCode(mdwerror.CodeMissingField).
		WithOperation(operation).
		WithDetail("schema", schema).
		WithDetail("field", field)
}

func fieldError(schema string, err error, operation string) *mdwerror.Error {
	return mdwerror.Wrap(err, schema).
		WithOperation(operation).
		WithDetail("schema", schema)
}
