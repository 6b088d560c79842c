// File: decoder.go
// Title: Batch Row Decoder
// Description: Lazy decoding of row sequences with a configurable policy for
//              invalid rows. Skipped rows are logged through the foundation
//              logger and counted in Stats.
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
	"iter"
	"strings"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	mdwlog "github.com/msto63/recordkit/foundation/core/log"
	"github.com/msto63/recordkit/foundation/core/record"
)

// Policy decides what happens to a row that fails to decode
type Policy int

const (
	// PolicyStop yields the first error and ends the sequence
	PolicyStop Policy = iota
	// PolicySkip logs the bad row and continues with the next one
	PolicySkip
)

// String returns the configuration name of the policy
func (p Policy) String() string {
	switch p {
	case PolicyStop:
		return "stop"
	case PolicySkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "stop" or "skip"; the empty string means stop
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "stop":
		return PolicyStop, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyStop, mdwerror.New(fmt.Sprintf("unknown decode policy %q (valid: stop, skip)", name)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("decode.ParsePolicy").
			WithDetail("policy", name)
	}
}

// Options configures a Decoder
type Options struct {
	Policy Policy

	// Logger receives one warning per skipped row. Nil means discard.
	Logger *mdwlog.Logger

	// RowOffset is added to row numbers, e.g. 1 when a header was consumed
	RowOffset int

	// OnSkip is called for every skipped row
	OnSkip func(*RowDecodeError)
}

// Stats counts the outcome of a batch
type Stats struct {
	Rows    int
	Decoded int
	Skipped int
}

// Decoder decodes rows for one schema
type Decoder struct {
	schema *record.Schema
	opts   Options
	logger *mdwlog.Logger
}

// NewDecoder creates a decoder for schema
func NewDecoder(schema *record.Schema, opts Options) *Decoder {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}
	return &Decoder{
		schema: schema,
		opts:   opts,
		logger: logger.WithName("decode").WithField("schema", schema.Name()),
	}
}

// Schema returns the decoder's schema
func (d *Decoder) Schema() *record.Schema {
	return d.schema
}

// Policy returns the decoder's policy
func (d *Decoder) Policy() Policy {
	return d.opts.Policy
}

// Decode decodes one row and stamps errors with the given row number
func (d *Decoder) Decode(row int, tokens []string) (*record.Record, error) {
	rec, rerr := decodeRow(d.schema, tokens)
	if rerr != nil {
		rerr.Row = row
		return nil, rerr
	}
	return rec, nil
}

// All decodes rows lazily. Under PolicyStop the first failure is yielded
// with a nil record and the sequence ends; under PolicySkip failures are
// logged and never yielded.
func (d *Decoder) All(rows iter.Seq[[]string]) iter.Seq2[*record.Record, error] {
	return func(yield func(*record.Record, error) bool) {
		d.run(rows, nil, yield)
	}
}

// Collect decodes every row and returns the successful records in order.
// Under PolicyStop the records before the failing row are returned along
// with the error.
func (d *Decoder) Collect(rows iter.Seq[[]string]) ([]*record.Record, Stats, error) {
	var (
		stats   Stats
		records []*record.Record
		failed  error
	)
	d.run(rows, &stats, func(rec *record.Record, err error) bool {
		if err != nil {
			failed = err
			return false
		}
		records = append(records, rec)
		return true
	})
	return records, stats, failed
}

func (d *Decoder) run(rows iter.Seq[[]string], stats *Stats, yield func(*record.Record, error) bool) {
	n := d.opts.RowOffset
	for tokens := range rows {
		n++
		if stats != nil {
			stats.Rows++
		}

		rec, rerr := decodeRow(d.schema, tokens)
		if rerr != nil {
			rerr.Row = n
			if err := d.Reject(rerr); err != nil {
				yield(nil, err)
				return
			}
			if stats != nil {
				stats.Skipped++
			}
			continue
		}

		if stats != nil {
			stats.Decoded++
		}
		if !yield(rec, nil) {
			return
		}
	}
}

// Reject applies the policy to a failed row. Under PolicySkip the row is
// logged and nil is returned; under PolicyStop rerr is returned.
func (d *Decoder) Reject(rerr *RowDecodeError) error {
	if d.opts.Policy != PolicySkip {
		return rerr
	}
	d.skip(rerr)
	return nil
}

func (d *Decoder) skip(rerr *RowDecodeError) {
	fields := mdwlog.Fields{
		"row":  rerr.Row,
		"code": rerr.Code.String(),
	}
	if rerr.Field != "" {
		fields["field"] = rerr.Field
		fields["token"] = rerr.Token
	}
	d.logger.WarnWithErr("row skipped", rerr.Err, fields)

	if d.opts.OnSkip != nil {
		d.opts.OnSkip(rerr)
	}
}

// DecodeAll decodes every row with the given policy
func DecodeAll(schema *record.Schema, rows [][]string, policy Policy) ([]*record.Record, error) {
	records, _, err := NewDecoder(schema, Options{Policy: policy}).Collect(Rows(rows))
	return records, err
}

// Rows adapts a slice of rows to a sequence
func Rows(rows [][]string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for _, row := range rows {
			if !yield(row) {
				return
			}
		}
	}
}
