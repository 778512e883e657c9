package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/Priyanshi004/Schedula-sub001/internal/storage"
	apperrors "github.com/Priyanshi004/Schedula-sub001/pkg/errors"
)

// Collection implements repository.RecordStore as an indented JSON array
// stored under a single blob key.
type Collection[T any] struct {
	store storage.BlobStore
	key   string
}

// NewCollection returns the collection persisted under key in store.
func NewCollection[T any](store storage.BlobStore, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// ReadAll loads and decodes the whole collection.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, apperrors.Unavailable(apperrors.Wrap(err, "read "+c.key))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperrors.Unavailable(apperrors.Wrap(err, "decode "+c.key))
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// WriteAll encodes records and replaces the blob.
func (c *Collection[T]) WriteAll(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperrors.Unavailable(apperrors.Wrap(err, "encode "+c.key))
	}
	data = append(data, '\n')

	if err := c.store.Put(ctx, c.key, data); err != nil {
		return apperrors.Unavailable(apperrors.Wrap(err, "write "+c.key))
	}
	return nil
}
