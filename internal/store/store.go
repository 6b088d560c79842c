// File: store.go
// Title: Record Persistence
// Description: Persists records in one table per record type. The table
//              layout is derived from the schema; loading re-validates every
//              row through the schema so a store edited behind recordkit's
//              back cannot produce invalid records.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package store

import (
	"context"
	"fmt"
	"regexp"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
)

// RecordStore defines the interface for record persistence
type RecordStore interface {
	// EnsureTable creates the table for schema if it does not exist
	EnsureTable(ctx context.Context, schema *record.Schema) error

	Insert(ctx context.Context, rec *record.Record) error
	// InsertAll inserts records in one transaction and reports how many
	// were accepted and rejected
	InsertAll(ctx context.Context, records []*record.Record) (int, int, error)

	Load(ctx context.Context, schema *record.Schema) ([]*record.Record, error)
	Count(ctx context.Context, schema *record.Schema) (int64, error)

	Close() error
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdentifiers(schema *record.Schema) error {
	if !identifier.MatchString(schema.Name()) {
		return invalidIdentifier(schema.Name(), schema.Name())
	}
	for _, name := range schema.FieldNames() {
		if !identifier.MatchString(name) {
			return invalidIdentifier(schema.Name(), name)
		}
	}
	return nil
}

func invalidIdentifier(schema, name string) error {
	return mdwerror.New(fmt.Sprintf("%s: %q cannot be used as a table or column name", schema, name)).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("store.EnsureTable").
		WithDetail("schema", schema).
		WithDetail("name", name)
}

func storageError(err error, message, operation string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorageError).
		WithOperation(operation)
}
