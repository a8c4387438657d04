package services

import (
	"fmt"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
)

// Session is the load-then-mutate-then-save transaction over a library.
// Begin loads; Close persists the in-memory state exactly once, on
// every exit path, so accumulated mutations are never silently lost.
// Not crash-atomic: durability is the store's concern.
type Session struct {
	store  driven.LibraryStore
	Lib    *domain.Library
	closed bool
}

// Begin loads the library at root and opens a session bound to it.
func Begin(store driven.LibraryStore, root string) (*Session, error) {
	lib, err := store.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading library at %s: %w", root, err)
	}
	return &Session{store: store, Lib: lib}, nil
}

// Close persists the session's library. Safe to call more than once;
// only the first call writes.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.store.Save(s.Lib); err != nil {
		return fmt.Errorf("saving library at %s: %w", s.Lib.Root, err)
	}
	return nil
}
