package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Priyanshi004/Schedula-sub001/internal/storage"
)

const keyPrefix = "schedula:blob:"

// Store implements storage.BlobStore with one Redis string per blob.
type Store struct {
	client redis.UniversalClient
}

// New wraps an existing client.
func New(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

func redisKey(key string) string {
	return keyPrefix + key
}

// Get returns the string stored under the blob key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Put overwrites the blob key without expiry.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping sends PING.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
