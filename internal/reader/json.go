// File: json.go
// Title: JSON Lines Record Reader
// Description: Reads one JSON object per line. Each document's shape is
//              checked against the record's JSON Schema, then its fields are
//              pulled out with gjson in schema order and checked by the
//              field specs, so row errors carry the same codes as CSV rows.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
// - 2026-10-18 v0.1.1: Typed JSON values checked per field

package reader

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"math"

	"github.com/tidwall/gjson"

	"github.com/msto63/recordkit/foundation/core/decode"
	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/foundation/core/validation"
)

const maxJSONLine = 1 << 20

// ReadJSONLines decodes newline-delimited JSON objects into records
func ReadJSONLines(ctx context.Context, r io.Reader, schema *record.Schema, opts Options) ([]*record.Record, decode.Stats, error) {
	dv, err := record.NewDocumentValidator(schema)
	if err != nil {
		return nil, decode.Stats{}, err
	}

	dec := decode.NewDecoder(schema, decode.Options{
		Policy: opts.Policy,
		Logger: opts.Logger,
		OnSkip: opts.OnSkip,
	})

	var (
		stats   decode.Stats
		records []*record.Record
		n       int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLine)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return records, stats, mdwerror.Wrap(err, "JSON read cancelled").
				WithCode(mdwerror.CodeInternal).
				WithOperation("reader.ReadJSONLines")
		}

		line := bytes.TrimSpace(scanner.Bytes())
		n++
		if len(line) == 0 {
			continue
		}
		stats.Rows++

		rec, rerr := decodeJSON(ctx, dv, schema, n, line)
		if rerr != nil {
			if err := dec.Reject(rerr); err != nil {
				return records, stats, err
			}
			stats.Skipped++
			continue
		}
		stats.Decoded++
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return records, stats, mdwerror.Wrap(err, "cannot read JSON input").
			WithCode(mdwerror.CodeIOError).
			WithOperation("reader.ReadJSONLines")
	}
	return records, stats, nil
}

func decodeJSON(ctx context.Context, dv *record.DocumentValidator, schema *record.Schema, n int, line []byte) (*record.Record, *decode.RowDecodeError) {
	if !gjson.ValidBytes(line) {
		err := mdwerror.New("malformed JSON document").
			WithCode(mdwerror.CodeParseFailure).
			WithOperation("reader.ReadJSONLines")
		return nil, &decode.RowDecodeError{Row: n, TokenIndex: -1, Code: mdwerror.CodeParseFailure, Err: err}
	}

	if err := dv.ValidateBytes(ctx, line); err != nil {
		rerr := &decode.RowDecodeError{Row: n, TokenIndex: -1, Code: mdwerror.GetCode(err), Err: err}
		if field, ok := mdwerror.GetDetail(err, "field"); ok {
			rerr.Field, _ = field.(string)
			if i, err := schema.IndexOf(rerr.Field); err == nil {
				rerr.TokenIndex = i
			}
		}
		return nil, rerr
	}

	doc := gjson.ParseBytes(line)
	values := make([]interface{}, schema.NumFields())
	for i := range values {
		spec := schema.Field(i)
		res := doc.Get(spec.Name())

		v, err := spec.Check(jsonValue(res, spec.Kind()))
		if err != nil {
			return nil, &decode.RowDecodeError{
				Row:        n,
				TokenIndex: i,
				Field:      spec.Name(),
				Token:      res.Raw,
				Code:       mdwerror.GetCode(err),
				Err:        err,
			}
		}
		values[i] = v
	}

	rec, err := schema.Construct(values...)
	if err != nil {
		return nil, &decode.RowDecodeError{Row: n, TokenIndex: -1, Code: mdwerror.GetCode(err), Err: err}
	}
	return rec, nil
}

// jsonValue converts a JSON value to the Go value the field kind expects.
// Numbers become float64, or int for integer fields when they are
// integral; strings stay strings. Everything else is passed through as
// its generic Go value so the kind check rejects it.
func jsonValue(res gjson.Result, kind validation.Kind) interface{} {
	switch res.Type {
	case gjson.Number:
		f := res.Float()
		if kind == validation.KindInteger && f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
			return int(f)
		}
		return f
	case gjson.String:
		return res.String()
	default:
		return res.Value()
	}
}

// maxExactInt is the largest integer a float64 holds exactly
const maxExactInt = 1 << 53
