package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Priyanshi004/Schedula-sub001/internal/domain"
	"github.com/Priyanshi004/Schedula-sub001/internal/repository"
	"github.com/Priyanshi004/Schedula-sub001/internal/repository/blob"
	"github.com/Priyanshi004/Schedula-sub001/internal/service"
	"github.com/Priyanshi004/Schedula-sub001/internal/storage/memory"
	"github.com/Priyanshi004/Schedula-sub001/pkg/health"
	"github.com/Priyanshi004/Schedula-sub001/pkg/middleware"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testServer struct {
	handler http.Handler
	clock   *testClock
	store   *memory.Store
}

// newTestServer wires the production router over in-memory stores.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	clock := &testClock{now: t0}
	store := memory.New()
	logger := testLogger()

	reviews := service.NewReviewService(
		blob.NewCollection[domain.Review](store, repository.ReviewsKey), nil, clock.Now, logger)
	appointments := service.NewAppointmentService(
		blob.NewCollection[domain.Appointment](store, repository.AppointmentsKey), nil, clock.Now, logger)

	router := NewRouter(RouterConfig{
		ServiceName:  "schedula-test",
		Reviews:      reviews,
		Appointments: appointments,
		Health:       health.NewHandler(),
		Logger:       logger,
		CORS:         middleware.DefaultCORSConfig(),
	})

	return &testServer{handler: router, clock: clock, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

type errorBody struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Fields    map[string]string `json:"fields"`
	RequestID string            `json:"request_id"`
}
