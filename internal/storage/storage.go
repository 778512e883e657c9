package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// BlobStore is the key to bytes medium a record collection lives in. Every
// Put replaces the whole blob.
type BlobStore interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous blob.
	Put(ctx context.Context, key string, data []byte) error

	// Ping reports whether the medium is reachable.
	Ping(ctx context.Context) error
}

// ValidateKey rejects keys that are empty or could escape a namespace, such
// as a directory or a key prefix.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\:`) {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}
