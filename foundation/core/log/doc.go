// Package log provides structured logging for recordkit.
//
// Package: log
// Title: recordkit Structured Logging
// Description: A small structured logger with levels, persistent context
//              fields, JSON/text/console/logfmt output and integration with
//              the structured error type: LogError picks the level from the
//              error's severity and flattens its code and details into fields.
//              Batch decoding uses it to report skipped rows without aborting.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-18 v0.2.0: Dropped async buffering, deterministic field order
//
// Usage:
//   import mdwlog "github.com/msto63/recordkit/foundation/core/log"
//
//   logger := mdwlog.New().
//     WithLevel(mdwlog.LevelInfo).
//     WithFormat(mdwlog.FormatText).
//     WithName("reader")
//
//   logger.Warn("bad row skipped", mdwlog.Fields{"row": 4, "field": "shares"})
//   logger.LogError(err)
//
//   timer := logger.StartTimer("decode portfolio.csv")
//   // ... decode
//   timer.StopWithResult(true, stats)
package log
