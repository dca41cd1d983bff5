// Package memory provides an in-memory ledger appender for tests and
// local development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finsight/internal/ledger"
)

type Store struct {
	mu      sync.Mutex
	entries []ledger.Entry
}

var _ ledger.Appender = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores the entry and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, e ledger.Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return fmt.Sprintf("mem:%d", len(s.entries)), nil
}

// Entries returns a copy of the appended entries in append order.
func (s *Store) Entries() []ledger.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledger.Entry(nil), s.entries...)
}
