// Package breaker guards a BlobStore with a circuit breaker so a failing
// medium is not hammered by every request.
package breaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"

	"github.com/Priyanshi004/Schedula-sub001/internal/storage"
)

// ErrOpen is returned while the breaker rejects calls.
var ErrOpen = gobreaker.ErrOpenState

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "schedula_store_breaker_state",
		Help: "Current state of the blob store circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// Config holds the trip policy.
type Config struct {
	Name string

	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureRatio trips the breaker once MinRequests have been seen.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultConfig returns the policy used for the record store.
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Store wraps a BlobStore. A missing blob counts as a success.
type Store struct {
	next    storage.BlobStore
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// New wraps next with a breaker configured by cfg.
func New(next storage.BlobStore, cfg Config, logger *slog.Logger) *Store {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, storage.ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("store circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}

	breakerState.WithLabelValues(cfg.Name).Set(0)

	return &Store{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// Get reads through the breaker.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	return s.breaker.Execute(func() ([]byte, error) {
		return s.next.Get(ctx, key)
	})
}

// Put writes through the breaker.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.breaker.Execute(func() ([]byte, error) {
		return nil, s.next.Put(ctx, key, data)
	})
	return err
}

// Ping bypasses the breaker so health checks see the medium itself.
func (s *Store) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// State reports the current breaker state.
func (s *Store) State() gobreaker.State {
	return s.breaker.State()
}
