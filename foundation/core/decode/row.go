// File: row.go
// Title: Single Row Decoding
// Description: DecodeRow and the RowDecodeError it reports.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package decode

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
)

// RowDecodeError describes why a row could not become a record
type RowDecodeError struct {
	// Row is the 1-based row number in a batch, 0 for a single DecodeRow call
	Row int
	// TokenIndex is the position of the offending token, -1 for arity errors
	TokenIndex int
	Field      string
	Token      string
	Code       mdwerror.Code
	Err        error
}

// Error implements the error interface
func (e *RowDecodeError) Error() string {
	var sb strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&sb, "row %d: ", e.Row)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, "field %s (token %d %q): ", e.Field, e.TokenIndex, e.Token)
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString(string(e.Code))
	}
	return sb.String()
}

// Unwrap returns the underlying error
func (e *RowDecodeError) Unwrap() error {
	return e.Err
}

// DecodeRow builds a record from one row of tokens in field order
func DecodeRow(schema *record.Schema, tokens []string) (*record.Record, error) {
	rec, err := decodeRow(schema, tokens)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// decodeRow returns a typed error so batch callers can set the row number
// without a type assertion.
func decodeRow(schema *record.Schema, tokens []string) (*record.Record, *RowDecodeError) {
	n := schema.NumFields()
	if len(tokens) != n {
		err := mdwerror.New(fmt.Sprintf("%s: Expected %d tokens, got %d", schema.Name(), n, len(tokens))).
			WithCode(mdwerror.CodeArityMismatch).
			WithOperation("decode.DecodeRow").
			WithDetail("schema", schema.Name()).
			WithDetail("expected", n).
			WithDetail("actual", len(tokens))
		return nil, &RowDecodeError{TokenIndex: -1, Code: mdwerror.CodeArityMismatch, Err: err}
	}

	values := make([]interface{}, n)
	for i, token := range tokens {
		spec := schema.Field(i)

		v, err := spec.Parse(token)
		if err != nil {
			return nil, &RowDecodeError{
				TokenIndex: i,
				Field:      spec.Name(),
				Token:      token,
				Code:       mdwerror.CodeParseFailure,
				Err:        err,
			}
		}

		if _, err := spec.Check(v); err != nil {
			return nil, &RowDecodeError{
				TokenIndex: i,
				Field:      spec.Name(),
				Token:      token,
				Code:       mdwerror.GetCode(err),
				Err:        err,
			}
		}
		values[i] = v
	}

	rec, err := schema.Construct(values...)
	if err != nil {
		return nil, &RowDecodeError{TokenIndex: -1, Code: mdwerror.GetCode(err), Err: err}
	}
	return rec, nil
}
