// Package instrumented records metrics and spans around BlobStore calls.
package instrumented

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Priyanshi004/Schedula-sub001/internal/storage"
)

const tracerName = "github.com/Priyanshi004/Schedula-sub001/internal/storage/instrumented"

var (
	storeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedula_store_operations_total",
			Help: "Blob store operations by backend, operation and result",
		},
		[]string{"backend", "operation", "result"},
	)

	storeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedula_store_operation_duration_seconds",
			Help:    "Blob store operation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)
)

// Store decorates a BlobStore.
type Store struct {
	next    storage.BlobStore
	backend string
}

// New wraps next, labelling everything with backend.
func New(next storage.BlobStore, backend string) *Store {
	return &Store{next: next, backend: backend}
}

func (s *Store) observe(ctx context.Context, op, key string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "store."+op,
		trace.WithAttributes(
			attribute.String("store.backend", s.backend),
			attribute.String("store.key", key),
		),
	)

	return ctx, func(err error) {
		result := "ok"
		switch {
		case err == nil:
		case errors.Is(err, storage.ErrNotFound):
			result = "not_found"
		default:
			result = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		storeOperations.WithLabelValues(s.backend, op, result).Inc()
		storeDuration.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
	}
}

// Get delegates to the wrapped store.
func (s *Store) Get(ctx context.Context, key string) (data []byte, err error) {
	ctx, done := s.observe(ctx, "get", key)
	defer func() { done(err) }()
	return s.next.Get(ctx, key)
}

// Put delegates to the wrapped store.
func (s *Store) Put(ctx context.Context, key string, data []byte) (err error) {
	ctx, done := s.observe(ctx, "put", key)
	defer func() { done(err) }()
	return s.next.Put(ctx, key, data)
}

// Ping is not instrumented.
func (s *Store) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
