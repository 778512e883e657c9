package service

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Priyanshi004/Schedula-sub001/internal/domain"
	"github.com/Priyanshi004/Schedula-sub001/internal/repository"
	"github.com/Priyanshi004/Schedula-sub001/internal/repository/blob"
	"github.com/Priyanshi004/Schedula-sub001/internal/storage/memory"
)

// --- Fake clock ---

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// --- Mock record store ---

type mockStore[T any] struct {
	mock.Mock
}

func (m *mockStore[T]) ReadAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *mockStore[T]) WriteAll(ctx context.Context, records []T) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// --- Mock events ---

type mockReviewEvents struct {
	mock.Mock
}

func (m *mockReviewEvents) PublishReview(ctx context.Context, action string, r domain.Review, at time.Time) error {
	args := m.Called(ctx, action, r, at)
	return args.Error(0)
}

type mockAppointmentEvents struct {
	mock.Mock
}

func (m *mockAppointmentEvents) PublishAppointment(ctx context.Context, action string, a domain.Appointment, at time.Time) error {
	args := m.Called(ctx, action, a, at)
	return args.Error(0)
}

// --- Test Helpers ---

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newReviewStore() repository.RecordStore[domain.Review] {
	return blob.NewCollection[domain.Review](memory.New(), repository.ReviewsKey)
}

func newAppointmentStore() repository.RecordStore[domain.Appointment] {
	return blob.NewCollection[domain.Appointment](memory.New(), repository.AppointmentsKey)
}

func intPtr(v int) *int              { return &v }
func strPtr(v string) *string        { return &v }
func timePtr(v time.Time) *time.Time { return &v }
