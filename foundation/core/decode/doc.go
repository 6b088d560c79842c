// Package decode turns rows of text tokens into validated records.
//
// Package: decode
// Title: Row Decoding
// Description: DecodeRow pairs each token of a row with the schema field at
//              the same position, converts it with the field's kind and
//              validates the result. Failures are RowDecodeErrors that name
//              the row, token position, field and offending token, and wrap
//              the underlying structured error. A Decoder applies DecodeRow
//              lazily to a sequence of rows under a stop or skip policy.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
//
// Usage:
//   rec, err := decode.DecodeRow(stocks.StockSchema, []string{"GOOG", "100", "490.1"})
//
//   dec := decode.NewDecoder(schema, decode.Options{Policy: decode.PolicySkip, Logger: logger})
//   for rec, err := range dec.All(rows) {
//     ...
//   }
package decode
