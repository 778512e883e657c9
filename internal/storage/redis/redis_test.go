package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyanshi004/Schedula-sub001/internal/storage/storagetest"
)

func setupTestRedis(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client), mr
}

func TestStore_Contract(t *testing.T) {
	store, _ := setupTestRedis(t)
	storagetest.Run(t, store)
}

func TestStore_UsesPrefixedKeyWithoutExpiry(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, store.Put(context.Background(), "reviews", []byte(`[]`)))

	got, err := mr.Get("schedula:blob:reviews")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)
	assert.Zero(t, mr.TTL("schedula:blob:reviews"))
}

func TestStore_ReadsSeededKey(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("schedula:blob:appointments", `[{"id":"a1"}]`))

	got, err := store.Get(context.Background(), "appointments")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a1"}]`, string(got))
}

func TestStore_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	_, err := store.Get(context.Background(), "reviews")
	assert.Error(t, err)
	assert.Error(t, store.Ping(context.Background()))
}
