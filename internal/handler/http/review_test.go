package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyanshi004/Schedula-sub001/internal/domain"
	"github.com/Priyanshi004/Schedula-sub001/internal/repository"
)

type reviewView struct {
	domain.Review
	CanEdit bool `json:"canEdit"`
}

type successBody struct {
	Success bool        `json:"success"`
	Review  *reviewView `json:"review"`
}

func createReview(t *testing.T, s *testServer) reviewView {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/reviews", map[string]any{
		"appointmentId": "2",
		"rating":        5,
		"reviewText":    "Great doctor!",
		"doctorName":    "Dr. Mehta",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeResponse[reviewView](t, rec)
}

func TestCreateReview(t *testing.T) {
	s := newTestServer(t)

	view := createReview(t, s)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "2", view.AppointmentID)
	assert.Equal(t, 5, view.Rating)
	assert.True(t, view.CanEdit)
	assert.Equal(t, t0, view.CreatedAt)
}

func TestCreateReview_MissingFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/reviews", map[string]any{"reviewText": "no rating"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResponse[errorBody](t, rec)
	assert.Equal(t, "Missing required fields", body.Error)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/reviews", map[string]any{"appointmentId": "1", "rating": 6})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Rating must be between 1 and 5", decodeResponse[errorBody](t, rec).Error)
}

func TestCreateReview_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/reviews", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeResponse[errorBody](t, rec).Code)
}

func TestCreateReview_RejectsNonJSONContentType(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader([]byte("rating=5")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestListReviews(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/reviews", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	createReview(t, s)
	createReview(t, s)

	rec = s.do(t, http.MethodGet, "/reviews", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeResponse[[]domain.Review](t, rec), 2)
}

func TestGetReview(t *testing.T) {
	s := newTestServer(t)
	created := createReview(t, s)

	s.clock.Set(t0.Add(time.Hour))
	rec := s.do(t, http.MethodGet, "/reviews/"+created.ID, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeResponse[reviewView](t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.CanEdit)

	s.clock.Set(t0.Add(24 * time.Hour))
	rec = s.do(t, http.MethodGet, "/reviews/"+created.ID, nil)
	assert.False(t, decodeResponse[reviewView](t, rec).CanEdit)
}

func TestGetReview_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/reviews/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeResponse[errorBody](t, rec)
	assert.Equal(t, "Review not found", body.Error)
	assert.NotEmpty(t, body.RequestID)
}

func TestUpdateReview(t *testing.T) {
	s := newTestServer(t)
	created := createReview(t, s)

	s.clock.Set(t0.Add(time.Hour))
	rec := s.do(t, http.MethodPut, "/reviews/"+created.ID, map[string]any{"rating": 3, "reviewText": "Okay"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeResponse[successBody](t, rec)
	assert.True(t, body.Success)
	require.NotNil(t, body.Review)
	assert.Equal(t, 3, body.Review.Rating)
	assert.Equal(t, "Okay", body.Review.ReviewText)
	assert.True(t, body.Review.CanEdit)
	assert.Equal(t, t0.Add(time.Hour), body.Review.UpdatedAt)
}

func TestUpdateReview_WindowExpired(t *testing.T) {
	s := newTestServer(t)
	created := createReview(t, s)

	s.clock.Set(t0.Add(25 * time.Hour))
	rec := s.do(t, http.MethodPut, "/reviews/"+created.ID, map[string]any{"rating": 1})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeResponse[errorBody](t, rec)
	assert.Equal(t, "Review can no longer be edited (24-hour limit exceeded)", body.Error)
	assert.Equal(t, "EDIT_WINDOW_EXPIRED", body.Code)
}

func TestUpdateReview_InvalidRating(t *testing.T) {
	s := newTestServer(t)
	created := createReview(t, s)

	rec := s.do(t, http.MethodPut, "/reviews/"+created.ID, map[string]any{"rating": 7})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Rating must be between 1 and 5", decodeResponse[errorBody](t, rec).Error)
}

func TestUpdateReview_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/reviews/missing", map[string]any{"rating": 4})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteReview(t *testing.T) {
	s := newTestServer(t)
	created := createReview(t, s)

	s.clock.Set(t0.Add(23 * time.Hour))
	rec := s.do(t, http.MethodDelete, "/reviews/"+created.ID, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/reviews/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteReview_WindowExpired(t *testing.T) {
	s := newTestServer(t)
	created := createReview(t, s)

	s.clock.Set(t0.Add(24 * time.Hour))
	rec := s.do(t, http.MethodDelete, "/reviews/"+created.ID, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReviewSummaries(t *testing.T) {
	s := newTestServer(t)
	createReview(t, s)
	rec := s.do(t, http.MethodPost, "/reviews", map[string]any{"appointmentId": "3", "rating": 4, "doctorName": "Dr. Mehta"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/reviews/summary?doctorName=Dr.%20Mehta", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"doctorName":"Dr. Mehta","averageRating":4.5,"totalCount":2}]`, rec.Body.String())
}

func TestReviewRoutes_CorruptStore(t *testing.T) {
	s := newTestServer(t)
	created := createReview(t, s)
	require.NoError(t, s.store.Put(context.Background(), repository.ReviewsKey, []byte("{not json")))

	rec := s.do(t, http.MethodGet, "/reviews", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"get", http.MethodGet, "/reviews/" + created.ID, nil},
		{"update", http.MethodPut, "/reviews/" + created.ID, map[string]any{"rating": 3}},
		{"delete", http.MethodDelete, "/reviews/" + created.ID, nil},
		{"create", http.MethodPost, "/reviews", map[string]any{"appointmentId": "3", "rating": 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			resp := decodeResponse[errorBody](t, rec)
			assert.Equal(t, "Internal server error", resp.Error)
			assert.NotContains(t, rec.Body.String(), "not json")
		})
	}
}
