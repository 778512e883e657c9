// Package storagetest holds the behaviour every BlobStore backend shares.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyanshi004/Schedula-sub001/internal/storage"
)

// Run exercises store against the BlobStore contract. The store must start
// empty.
func Run(t *testing.T, store storage.BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "absent")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "reviews", []byte(`[{"id":"r1"}]`)))

		got, err := store.Get(ctx, "reviews")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"r1"}]`, string(got))
	})

	t.Run("put replaces", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "appointments", []byte(`[{"id":"a1"}]`)))
		require.NoError(t, store.Put(ctx, "appointments", []byte(`[]`)))

		got, err := store.Get(ctx, "appointments")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "left", []byte(`[1]`)))
		require.NoError(t, store.Put(ctx, "right", []byte(`[2]`)))

		left, err := store.Get(ctx, "left")
		require.NoError(t, err)
		assert.JSONEq(t, `[1]`, string(left))
	})

	t.Run("invalid key", func(t *testing.T) {
		assert.Error(t, store.Put(ctx, "../escape", []byte(`[]`)))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}
