package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Priyanshi004/Schedula-sub001/internal/storage"
	"github.com/Priyanshi004/Schedula-sub001/pkg/database"
)

// DB is the pool surface the store needs.
type DB interface {
	database.DBTX
	database.Pinger
}

const (
	getBlobQuery = `SELECT data FROM record_blobs WHERE key = $1`

	putBlobQuery = `INSERT INTO record_blobs (key, data, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
)

// Store implements storage.BlobStore on the record_blobs table, one JSONB
// row per blob.
type Store struct {
	db DB
}

// New wraps db. The record_blobs table must already exist.
func New(db DB) *Store {
	return &Store{db: db}
}

// Get selects the row for key.
func (s *Store) Get(ctx context.Context, key string) (data []byte, err error) {
	ctx, end := database.TraceQuery(ctx, "GetBlob", getBlobQuery)
	defer func() { end(err) }()

	err = s.db.QueryRow(ctx, getBlobQuery, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select blob %s: %w", key, err)
	}
	return data, nil
}

// Put upserts the row for key.
func (s *Store) Put(ctx context.Context, key string, data []byte) (err error) {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	ctx, end := database.TraceQuery(ctx, "PutBlob", putBlobQuery)
	defer func() { end(err) }()

	if _, err = s.db.Exec(ctx, putBlobQuery, key, json.RawMessage(data)); err != nil {
		return fmt.Errorf("upsert blob %s: %w", key, err)
	}
	return nil
}

// Ping checks the pool.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
