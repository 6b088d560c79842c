// Package record implements declarative record types: a Schema is an
// ordered, immutable list of field specs, and a Record is a mutable value of
// a Schema whose every write is validated.
//
// Package: record
// Title: Record Schemas and Validated Records
// Description: Schemas are declared once at startup with Define. They derive
//              field order, kinds and positional indices, and construct
//              Records either positionally (Construct) or by name
//              (ConstructFromNamed). A Record only knows the fields of its
//              schema: reads and writes of any other name fail with
//              UNKNOWN_FIELD, and Set re-runs the field's validation before
//              committing, so a Record never holds an invalid value.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
//
// Usage:
//   var Stock = record.MustDefine("Stock",
//     validation.String("name"),
//     validation.PositiveInteger("shares"),
//     validation.PositiveFloat("price"),
//   )
//
//   s, err := Stock.Construct("GOOG", 100, 490.1)
//   fmt.Println(s) // Stock(name='GOOG', shares=100, price=490.1)
//
//   err = s.Set("shares", -50) // CONSTRAINT_VIOLATION, s unchanged
package record
