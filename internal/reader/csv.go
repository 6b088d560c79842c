// File: csv.go
// Title: CSV Record Reader
// Description: Reads CSV input into validated records. An optional header
//              row (or an explicit header list) maps columns to schema
//              fields by name; without one, columns are taken positionally.
//              Bad rows are handled by the decode policy.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
// - 2026-10-18 v0.1.1: Malformed lines are row errors

package reader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/msto63/recordkit/foundation/core/decode"
	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	mdwlog "github.com/msto63/recordkit/foundation/core/log"
	"github.com/msto63/recordkit/foundation/core/record"
)

// Options configures the readers
type Options struct {
	// HasHeader consumes the first row as column names
	HasHeader bool

	// Headers names the columns when the input has no header row
	Headers []string

	// Comma is the field delimiter, ',' if zero
	Comma rune

	Policy decode.Policy
	Logger *mdwlog.Logger

	// OnSkip is forwarded to the decoder
	OnSkip func(*decode.RowDecodeError)
}

// RowSource reads CSV rows one at a time. A malformed line is reported
// as a PARSE_FAILURE and reading continues with the next line; any other
// read error is an IO_ERROR that ends the source.
type RowSource struct {
	r   *csv.Reader
	err error
}

// CSVRows creates a row source over r
func CSVRows(r io.Reader, comma rune) *RowSource {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false
	return &RowSource{r: cr}
}

// Next returns the next row, io.EOF at the end
func (s *RowSource) Next() ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	row, err := s.r.Read()
	if err == nil {
		return row, nil
	}
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}

	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return nil, mdwerror.Wrap(err, "malformed CSV row").
			WithCode(mdwerror.CodeParseFailure).
			WithOperation("reader.CSVRows").
			WithDetail("line", perr.StartLine)
	}

	s.err = mdwerror.Wrap(err, "cannot read CSV input").
		WithCode(mdwerror.CodeIOError).
		WithOperation("reader.CSVRows")
	return nil, s.err
}

// ReadCSV decodes all rows of r into records of schema. Malformed lines
// and rows that fail to decode are both handled by the decode policy.
func ReadCSV(ctx context.Context, r io.Reader, schema *record.Schema, opts Options) ([]*record.Record, decode.Stats, error) {
	src := CSVRows(r, opts.Comma)

	headers := opts.Headers
	n := 0
	if opts.HasHeader {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil, decode.Stats{}, nil
		}
		if err != nil {
			return nil, decode.Stats{}, err
		}
		headers = row
		n = 1
	}

	var columns []int
	if len(headers) > 0 {
		var err error
		if columns, err = columnIndex(schema, headers); err != nil {
			return nil, decode.Stats{}, err
		}
	}

	dec := decode.NewDecoder(schema, decode.Options{
		Policy: opts.Policy,
		Logger: opts.Logger,
		OnSkip: opts.OnSkip,
	})

	var (
		stats   decode.Stats
		records []*record.Record
	)
	for {
		if err := ctx.Err(); err != nil {
			return records, stats, mdwerror.Wrap(err, "CSV read cancelled").
				WithCode(mdwerror.CodeInternal).
				WithOperation("reader.ReadCSV")
		}

		tokens, err := src.Next()
		if errors.Is(err, io.EOF) {
			return records, stats, nil
		}
		if err != nil && !mdwerror.HasCode(err, mdwerror.CodeParseFailure) {
			return records, stats, err
		}
		n++
		stats.Rows++

		rec, rerr := decodeCSVRow(dec, n, tokens, err, columns)
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
}

func decodeCSVRow(dec *decode.Decoder, n int, tokens []string, readErr error, columns []int) (*record.Record, *decode.RowDecodeError) {
	if readErr != nil {
		return nil, &decode.RowDecodeError{Row: n, TokenIndex: -1, Code: mdwerror.CodeParseFailure, Err: readErr}
	}
	if columns != nil {
		tokens = project(tokens, columns)
	}
	rec, err := dec.Decode(n, tokens)
	if err != nil {
		rerr, _ := err.(*decode.RowDecodeError)
		return nil, rerr
	}
	return rec, nil
}

// ReadCSVFile opens path and calls ReadCSV
func ReadCSVFile(ctx context.Context, path string, schema *record.Schema, opts Options) ([]*record.Record, decode.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, decode.Stats{}, mdwerror.Wrap(err, fmt.Sprintf("cannot open %s", path)).
			WithCode(mdwerror.CodeIOError).
			WithOperation("reader.ReadCSVFile").
			WithDetail("path", path)
	}
	defer f.Close()

	return ReadCSV(ctx, f, schema, opts)
}

// columnIndex finds the column of every schema field in headers
func columnIndex(schema *record.Schema, headers []string) ([]int, error) {
	byName := make(map[string]int, len(headers))
	for i, h := range headers {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	columns := make([]int, schema.NumFields())
	for i, name := range schema.FieldNames() {
		col, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, mdwerror.New(fmt.Sprintf("%s: no column for field %q", schema.Name(), name)).
				WithCode(mdwerror.CodeMissingField).
				WithOperation("reader.ReadCSV").
				WithDetail("field", name).
				WithDetail("headers", headers)
		}
		columns[i] = col
	}
	return columns, nil
}

// project reorders a row into schema field order. A row too short for a
// column loses that token, which the decoder reports as an arity error.
func project(row []string, columns []int) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if col < len(row) {
			out = append(out, row[col])
		}
	}
	return out
}
