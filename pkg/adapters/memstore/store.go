// Package memstore provides an in-memory store implementation.
package memstore

import (
	"context"
	"errors"
	"sync"

	"github.com/user/codeshot/pkg/ports"
)

// Store is an in-memory ports.Store. Entries live until deleted or cleared;
// there is no TTL because the request flow clears the store explicitly.
type Store struct {
	mu      sync.RWMutex
	entries map[string]ports.Entry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]ports.Entry)}
}

// Put stores an entry under id, replacing any existing entry. A copy of the
// image bytes is kept so the caller's buffer cannot mutate stored state.
func (s *Store) Put(ctx context.Context, id string, entry ports.Entry) error {
	if id == "" {
		return errors.New("empty id")
	}
	if len(entry.Data) == 0 {
		return errors.New("empty image data")
	}

	data := make([]byte, len(entry.Data))
	copy(data, entry.Data)

	s.mu.Lock()
	s.entries[id] = ports.Entry{Data: data, Filename: entry.Filename}
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the entry for id without deleting it.
func (s *Store) Get(ctx context.Context, id string) (ports.Entry, bool) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return ports.Entry{}, false
	}

	data := make([]byte, len(entry.Data))
	copy(data, entry.Data)
	return ports.Entry{Data: data, Filename: entry.Filename}, true
}

// Delete removes the entry for id, if present.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]ports.Entry)
	s.mu.Unlock()
	return nil
}

// Len reports the number of resident entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ ports.Store = (*Store)(nil)
