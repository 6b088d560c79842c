// Package validation implements field-level validation for recordkit.
//
// Package: validation
// Title: Field Validators and Constraint Composition
// Description: A field is validated by a Spec: a name, an underlying value
//              kind (int, float, str) and an ordered list of constraints.
//              Spec.Check runs the kind check first and then each
//              constraint in declaration order, stopping at the first
//              failure. Composite validators such as PositiveInteger are
//              nothing more than a kind plus a fixed list of constraints:
//
//                PositiveInteger(name) == NewSpec(name, KindInteger, NonNegative())
//
//              Every check is a Validator, so the same building blocks can be
//              chained, reused standalone or plugged into a ValidatorChain.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial validation framework
// - 2026-10-18 v0.2.0: Kinds, constraints and field specs
//
// Usage:
//   import "github.com/msto63/recordkit/foundation/core/validation"
//
//   shares := validation.PositiveInteger("shares")
//
//   if _, err := shares.Check(-50); err != nil {
//     // err is a *mdwerror.Error with code CONSTRAINT_VIOLATION
//   }
//
//   v, err := shares.Parse("100") // v == 100 (int)
//
//   custom := validation.NewSpec("ticker", validation.KindString,
//     validation.NonEmptyCheck(),
//     validation.NewConstraint("upper", "Must be upper case", isUpper))
package validation
