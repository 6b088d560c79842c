// File: ticker.go
// Title: Ticker Record Type
// Description: The stock log schema and a filter over streamed ticker records.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package stocks

import (
	"iter"

	"github.com/msto63/recordkit/foundation/core/decode"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/foundation/core/validation"
)

// TickerSchema declares one line of a real-time stock log
var TickerSchema = record.MustDefine("Ticker",
	validation.String("name"),
	validation.Float("price"),
	validation.String("date"),
	validation.String("time"),
	validation.Float("change"),
	validation.Float("open"),
	validation.Float("high"),
	validation.Float("low"),
	validation.Integer("volume"),
)

// TickerFromRow decodes one stock log row
func TickerFromRow(tokens []string) (*record.Record, error) {
	return decode.DecodeRow(TickerSchema, tokens)
}

// NegativeChange passes through records whose change field is below zero.
// Records without a float change field are dropped.
func NegativeChange(records iter.Seq[*record.Record]) iter.Seq[*record.Record] {
	return func(yield func(*record.Record) bool) {
		for rec := range records {
			change, err := rec.Float("change")
			if err != nil || change >= 0 {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}
