package store

import (
	"context"
	"sync"
)

// MemoryStore keeps blobs in memory for the life of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	return cloneBlob(blob), ok, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, key string, blob []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = cloneBlob(blob)
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
