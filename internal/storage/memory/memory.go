package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Priyanshi004/Schedula-sub001/internal/storage"
)

// Store implements storage.BlobStore with a process-local map.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return slices.Clone(data), nil
}

// Put stores a copy of data under key.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = slices.Clone(data)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}
