// File: sqlite.go
// Title: SQLite Record Store
// Description: Persists records in SQLite, one table per schema with a
//              column per field. Loaded rows are revalidated against the
//              schema.
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
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/foundation/core/validation"
)

// SQLiteStore implements RecordStore using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// Open creates a SQLite store at cfg.Path
func Open(cfg Config) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storageError(err, "failed to create directory", "store.Open").
			WithDetail("path", dir)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, storageError(err, "failed to open database", "store.Open").
			WithDetail("path", cfg.Path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storageError(err, "failed to open database", "store.Open").
			WithDetail("path", cfg.Path)
	}

	return &SQLiteStore{db: db}, nil
}

func sqlType(kind validation.Kind) string {
	switch kind {
	case validation.KindInteger:
		return "INTEGER"
	case validation.KindFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}

// EnsureTable creates the table for schema. An existing table must have
// the schema's columns in declaration order.
func (s *SQLiteStore) EnsureTable(ctx context.Context, schema *record.Schema) error {
	if err := checkIdentifiers(schema); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	columns := []string{
		"id INTEGER PRIMARY KEY AUTOINCREMENT",
		"imported_at DATETIME NOT NULL",
	}
	for _, name := range schema.FieldNames() {
		kind, _ := schema.KindOf(name)
		columns = append(columns, fmt.Sprintf("%s %s NOT NULL", quoteIdent(name), sqlType(kind)))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", quoteIdent(schema.Name()), strings.Join(columns, ",\n\t"))
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return storageError(err, fmt.Sprintf("failed to create table %s", schema.Name()), "store.EnsureTable")
	}

	return s.verifyColumns(ctx, schema)
}

func (s *SQLiteStore) verifyColumns(ctx context.Context, schema *record.Schema) error {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(schema.Name())))
	if err != nil {
		return storageError(err, "failed to inspect table", "store.EnsureTable")
	}
	defer rows.Close()

	var actual []string
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return storageError(err, "failed to inspect table", "store.EnsureTable")
		}
		if name == "id" || name == "imported_at" {
			continue
		}
		actual = append(actual, name)
	}
	if err := rows.Err(); err != nil {
		return storageError(err, "failed to inspect table", "store.EnsureTable")
	}

	expected := schema.FieldNames()
	if strings.Join(actual, ",") != strings.Join(expected, ",") {
		return mdwerror.New(fmt.Sprintf("table %s has columns %v, schema declares %v", schema.Name(), actual, expected)).
			WithCode(mdwerror.CodeStorageError).
			WithOperation("store.EnsureTable").
			WithDetail("schema", schema.Name())
	}
	return nil
}

func insertStatement(schema *record.Schema) string {
	names := schema.FieldNames()
	cols := make([]string, 0, len(names)+1)
	marks := make([]string, 0, len(names)+1)
	cols = append(cols, "imported_at")
	marks = append(marks, "?")
	for _, name := range names {
		cols = append(cols, quoteIdent(name))
		marks = append(marks, "?")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(schema.Name()), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

func insertArgs(rec *record.Record, now time.Time) []interface{} {
	return append([]interface{}{now}, rec.Values()...)
}

// Insert stores one record
func (s *SQLiteStore) Insert(ctx context.Context, rec *record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema := rec.Schema()
	if _, err := s.db.ExecContext(ctx, insertStatement(schema), insertArgs(rec, time.Now())...); err != nil {
		return storageError(err, fmt.Sprintf("failed to insert %s", schema.Name()), "store.Insert")
	}
	return nil
}

// InsertAll stores records in one transaction. All records must share a
// schema.
func (s *SQLiteStore) InsertAll(ctx context.Context, records []*record.Record) (int, int, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}
	schema := records[0].Schema()
	for _, rec := range records[1:] {
		if rec.Schema() != schema {
			return 0, len(records), mdwerror.New("records of different types in one batch").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("store.InsertAll")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, len(records), storageError(err, "failed to begin transaction", "store.InsertAll")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertStatement(schema))
	if err != nil {
		return 0, len(records), storageError(err, "failed to prepare statement", "store.InsertAll")
	}
	defer stmt.Close()

	now := time.Now()
	var accepted, rejected int
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, insertArgs(rec, now)...); err != nil {
			rejected++
		} else {
			accepted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, len(records), storageError(err, "failed to commit transaction", "store.InsertAll")
	}

	return accepted, rejected, nil
}

// Load reads every stored record of schema in insertion order
func (s *SQLiteStore) Load(ctx context.Context, schema *record.Schema) ([]*record.Record, error) {
	if err := checkIdentifiers(schema); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := schema.FieldNames()
	cols := make([]string, len(names))
	for i, name := range names {
		cols[i] = quoteIdent(name)
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(cols, ", "), quoteIdent(schema.Name()))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError(err, fmt.Sprintf("failed to query %s", schema.Name()), "store.Load")
	}
	defer rows.Close()

	var records []*record.Record
	for rows.Next() {
		dest := make([]interface{}, len(names))
		for i := range names {
			switch schema.Field(i).Kind() {
			case validation.KindInteger:
				dest[i] = new(int64)
			case validation.KindFloat:
				dest[i] = new(float64)
			default:
				dest[i] = new(string)
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, storageError(err, fmt.Sprintf("failed to scan %s", schema.Name()), "store.Load")
		}

		values := make([]interface{}, len(dest))
		for i, d := range dest {
			switch v := d.(type) {
			case *int64:
				values[i] = int(*v)
			case *float64:
				values[i] = *v
			case *string:
				values[i] = *v
			}
		}

		rec, err := schema.Construct(values...)
		if err != nil {
			return nil, mdwerror.Wrap(err, fmt.Sprintf("stored %s row is invalid", schema.Name())).
				WithOperation("store.Load")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, fmt.Sprintf("failed to read %s", schema.Name()), "store.Load")
	}

	return records, nil
}

// Count returns the number of stored records of schema
func (s *SQLiteStore) Count(ctx context.Context, schema *record.Schema) (int64, error) {
	if err := checkIdentifiers(schema); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(schema.Name()))).Scan(&n); err != nil {
		return 0, storageError(err, fmt.Sprintf("failed to count %s", schema.Name()), "store.Count")
	}
	return n, nil
}

// Vacuum rebuilds the database file, reclaiming space from replaced tables
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return storageError(err, "failed to vacuum database", "store.Vacuum")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
