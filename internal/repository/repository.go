package repository

import "context"

// Blob keys of the persisted collections.
const (
	ReviewsKey      = "reviews"
	AppointmentsKey = "appointments"
)

// RecordStore holds one whole collection of records. Callers read the full
// slice, change it, and write the full slice back.
type RecordStore[T any] interface {
	// ReadAll returns every record in insertion order. A collection that
	// was never written is empty, not an error.
	ReadAll(ctx context.Context) ([]T, error)

	// WriteAll replaces the persisted collection with records.
	WriteAll(ctx context.Context, records []T) error
}
