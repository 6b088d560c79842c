// File: dicts.go
// Title: Schema-Free CSV Reader
// Description: Reads CSV into row maps using per-column kinds.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package reader

import (
	"context"
	"errors"
	"fmt"
	"io"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/validation"
)

// ReadDicts reads CSV with a header row into one map per row, converting
// column i with kinds[i]. No record schema is involved, so only the
// conversion is checked. The header row is returned alongside the rows.
func ReadDicts(ctx context.Context, r io.Reader, kinds []validation.Kind, comma rune) ([]string, []map[string]interface{}, error) {
	src := CSVRows(r, comma)

	headers, err := src.Next()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if len(headers) != len(kinds) {
		return nil, nil, mdwerror.New(fmt.Sprintf("Expected %d columns, header has %d", len(kinds), len(headers))).
			WithCode(mdwerror.CodeArityMismatch).
			WithOperation("reader.ReadDicts").
			WithDetail("headers", headers)
	}

	var out []map[string]interface{}
	row := 1
	for {
		if err := ctx.Err(); err != nil {
			return headers, out, mdwerror.Wrap(err, "CSV read cancelled").
				WithCode(mdwerror.CodeInternal).
				WithOperation("reader.ReadDicts")
		}

		tokens, err := src.Next()
		if errors.Is(err, io.EOF) {
			return headers, out, nil
		}
		if err != nil {
			return headers, out, err
		}
		row++

		if len(tokens) != len(kinds) {
			return headers, out, mdwerror.New(fmt.Sprintf("row %d: Expected %d columns, got %d", row, len(kinds), len(tokens))).
				WithCode(mdwerror.CodeArityMismatch).
				WithOperation("reader.ReadDicts").
				WithDetail("row", row)
		}

		m := make(map[string]interface{}, len(kinds))
		for i, kind := range kinds {
			v, err := kind.Parse(tokens[i])
			if err != nil {
				return headers, out, mdwerror.Wrap(err, fmt.Sprintf("row %d: cannot parse %s %q as %s", row, headers[i], tokens[i], kind)).
					WithCode(mdwerror.CodeParseFailure).
					WithOperation("reader.ReadDicts").
					WithDetail("row", row).
					WithDetail("field", headers[i]).
					WithDetail("token", tokens[i])
			}
			m[headers[i]] = v
		}
		out = append(out, m)
	}
}
