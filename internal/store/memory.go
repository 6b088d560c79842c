// File: memory.go
// Title: In-Memory Record Store
// Description: Map-backed RecordStore used by tests and dry runs.
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
	"sync"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
)

// MemoryStore is an in-memory implementation for testing
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[*record.Schema][]*record.Record
}

// NewMemoryStore creates a new in-memory record store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[*record.Schema][]*record.Record),
	}
}

// EnsureTable registers the schema
func (s *MemoryStore) EnsureTable(ctx context.Context, schema *record.Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[schema]; !ok {
		s.tables[schema] = make([]*record.Record, 0)
	}
	return nil
}

// Insert stores a copy of rec
func (s *MemoryStore) Insert(ctx context.Context, rec *record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertLocked(rec)
}

func (s *MemoryStore) insertLocked(rec *record.Record) error {
	table, ok := s.tables[rec.Schema()]
	if !ok {
		return mdwerror.New(fmt.Sprintf("no table for %s", rec.Schema().Name())).
			WithCode(mdwerror.CodeStorageError).
			WithOperation("store.Insert")
	}
	s.tables[rec.Schema()] = append(table, rec.Clone())
	return nil
}

// InsertAll stores copies of records
func (s *MemoryStore) InsertAll(ctx context.Context, records []*record.Record) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var accepted, rejected int
	for _, rec := range records {
		if err := s.insertLocked(rec); err != nil {
			rejected++
		} else {
			accepted++
		}
	}
	return accepted, rejected, nil
}

// Load returns copies of the stored records
func (s *MemoryStore) Load(ctx context.Context, schema *record.Schema) ([]*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table := s.tables[schema]
	out := make([]*record.Record, len(table))
	for i, rec := range table {
		out[i] = rec.Clone()
	}
	return out, nil
}

// Count returns the number of stored records of schema
func (s *MemoryStore) Count(ctx context.Context, schema *record.Schema) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.tables[schema])), nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
