package store

import (
	"sync"

	"github.com/heysubinoy/kvs/pkg/kv"
)

// SyncStore guards another kv.Store with a RWMutex so it can be shared
// between goroutines. Reads take the read lock, writes the write lock.
type SyncStore struct {
	mu    sync.RWMutex
	store kv.Store
}

var _ kv.Store = (*SyncStore)(nil)

// NewSyncStore wraps store for concurrent use. The caller must not touch
// store directly afterwards.
func NewSyncStore(store kv.Store) *SyncStore {
	return &SyncStore{store: store}
}

// Get reads key under the read lock.
func (s *SyncStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Get(key)
}

// Set stores key under the write lock.
func (s *SyncStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Set(key, value)
}

// Remove deletes key under the write lock.
func (s *SyncStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Remove(key)
}

// Len returns the number of keys in the wrapped store, or -1 if it
// cannot report one.
func (s *SyncStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if l, ok := s.store.(kv.Lener); ok {
		return l.Len()
	}
	return -1
}
