// Package memory provides in-memory driven adapters for tests.
package memory

import (
	"sync"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore is an in-memory implementation of driven.LibraryStore.
// Records persist across Load calls for the lifetime of the store, so a
// test can observe what a save session wrote.
type LibraryStore struct {
	mu      sync.Mutex
	records []domain.Record

	// Saves counts Save calls, for asserting session behaviour.
	Saves int
}

// NewLibraryStore creates an empty in-memory library store.
func NewLibraryStore() *LibraryStore {
	return &LibraryStore{}
}

// Load returns a library over a copy of the stored records.
func (s *LibraryStore) Load(root string) (*domain.Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.Record, len(s.records))
	copy(records, s.records)
	return &domain.Library{Root: root, Records: records}, nil
}

// Save replaces the stored records with the library's.
func (s *LibraryStore) Save(lib *domain.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]domain.Record, len(lib.Records))
	copy(s.records, lib.Records)
	s.Saves++
	return nil
}

// Records returns a copy of the stored records.
func (s *LibraryStore) Records() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.Record, len(s.records))
	copy(records, s.records)
	return records
}

// Seed replaces the stored records without counting as a save.
func (s *LibraryStore) Seed(records ...domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]domain.Record, len(records))
	copy(s.records, records)
}
