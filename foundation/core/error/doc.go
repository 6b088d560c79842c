// Package error provides the structured error type used across recordkit.
//
// Package: error
// Title: recordkit Error Handling Framework
// Description: Implements a structured error with a machine-readable code, a
//              severity, free-form details and a captured stack trace. Every
//              failure surfaced by the record engine (type mismatches,
//              constraint violations, unknown or missing fields, parse
//              failures) is an *Error carrying one of the codes in codes.go,
//              so callers can branch on the code instead of matching strings.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-18 v0.2.0: Narrowed code table to record validation and ingestion
//
// Usage:
//   import mdwerror "github.com/msto63/recordkit/foundation/core/error"
//
//   err := mdwerror.New("Expected >= 0").
//     WithCode(mdwerror.CodeConstraintViolation).
//     WithDetail("field", "shares").
//     WithDetail("value", -50)
//
//   wrapped := mdwerror.Wrap(err, "Stock: invalid value for shares")
//
//   if mdwerror.HasCode(wrapped, mdwerror.CodeConstraintViolation) {
//     // reject the write
//   }
package error
