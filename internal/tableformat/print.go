// File: print.go
// Title: Table Printing
// Description: Feeds records or row maps through a Formatter.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package tableformat

import (
	"fmt"
	"iter"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
)

// getter returns the value of one named field of a row
type getter func(name string) (interface{}, error)

// PrintTable writes the named fields of each record. A field that a record
// does not declare stops the table with UNKNOWN_FIELD. The formatter is
// closed whether or not printing succeeds.
func PrintTable(records iter.Seq[*record.Record], fields []string, f Formatter) error {
	return printRows(func(yield func(getter) bool) {
		for rec := range records {
			if !yield(rec.Get) {
				return
			}
		}
	}, fields, f)
}

// PrintDicts writes the named keys of each row map, as read by schema-free
// readers. A missing key stops the table with UNKNOWN_FIELD.
func PrintDicts(rows []map[string]interface{}, fields []string, f Formatter) error {
	return printRows(func(yield func(getter) bool) {
		for _, row := range rows {
			get := func(name string) (interface{}, error) {
				v, ok := row[name]
				if !ok {
					return nil, mdwerror.New(fmt.Sprintf("no column %q", name)).
						WithCode(mdwerror.CodeUnknownField).
						WithOperation("tableformat.PrintDicts").
						WithDetail("field", name)
				}
				return v, nil
			}
			if !yield(get) {
				return
			}
		}
	}, fields, f)
}

func printRows(rows iter.Seq[getter], fields []string, f Formatter) (err error) {
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.Headings(fields); err != nil {
		return err
	}

	for get := range rows {
		row := make([]interface{}, len(fields))
		for i, name := range fields {
			v, err := get(name)
			if err != nil {
				return err
			}
			row[i] = v
		}
		if err := f.Row(row); err != nil {
			return err
		}
	}
	return nil
}
