package store

import (
	"github.com/heysubinoy/kvs/pkg/kv"
)

// MemStore is an in-memory implementation of the kv.Store interface
// backed by a plain map. Nothing is persisted; all entries are lost when
// the process exits.
//
// MemStore is not safe for concurrent use. It assumes a single owner for
// its whole lifetime; wrap it with NewSyncStore before sharing it between
// goroutines.
//
// The zero value is an empty store ready to use.
type MemStore struct {
	data map[string]string
}

// Compile-time check to ensure MemStore implements kv.Store.
var _ kv.Store = (*MemStore)(nil)

// NewMemStore creates and returns a new, empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		data: make(map[string]string),
	}
}

// Get retrieves a value by key from the store.
// Returns the value and true if found, empty string and false otherwise.
func (s *MemStore) Get(key string) (string, bool) {
	val, ok := s.data[key]
	return val, ok
}

// Set stores a key-value pair, overwriting any existing value for key.
func (s *MemStore) Set(key, value string) {
	if s.data == nil {
		s.data = make(map[string]string)
	}
	s.data[key] = value
}

// Remove deletes a key from the store. Missing keys are ignored.
func (s *MemStore) Remove(key string) {
	delete(s.data, key)
}

// Len returns the number of keys currently stored.
func (s *MemStore) Len() int {
	return len(s.data)
}
