package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Priyanshi004/Schedula-sub001/pkg/errors"
	"github.com/Priyanshi004/Schedula-sub001/pkg/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"key": "value"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"key":"value"}`, rec.Body.String())
}

func TestSuccessBody_OmitsEmptyReview(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, SuccessBody{Success: true})

	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestWriteError_AppErrorIsFlat(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reviews/abc", nil)

	WriteError(rec, req, apperrors.NotFound("review", "abc"), testLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Review not found", body.Error)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestWriteError_WindowExpired(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/reviews/abc", nil)

	WriteError(rec, req, fmt.Errorf("update review: %w", apperrors.WindowExpired("too late")), testLogger())

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "too late", body.Error)
	assert.Equal(t, "EDIT_WINDOW_EXPIRED", body.Code)
}

func TestWriteError_FieldsAndRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/appointments", nil)
	req = req.WithContext(logger.WithCorrelationID(req.Context(), "req-42"))

	WriteError(rec, req, apperrors.InvalidFields("bad", map[string]string{"date": "is required"}), testLogger())

	body := decodeBody(t, rec)
	assert.Equal(t, "req-42", body.RequestID)
	assert.Equal(t, "is required", body.Fields["date"])
}

func TestWriteError_SentinelMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{apperrors.ErrConflict, http.StatusConflict, "CONFLICT"},
		{apperrors.ErrWindowExpired, http.StatusForbidden, "FORBIDDEN"},
		{apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, testLogger())
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeBody(t, rec).Code)
		})
	}
}

func TestWriteError_InternalHidesDetailsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reviews", nil)

	WriteError(rec, req, apperrors.Unavailable(fmt.Errorf("open /data/reviews.json: permission denied")), l)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), "permission denied")
	assert.Contains(t, buf.String(), "permission denied")
}

func TestWriteError_UnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("boom"), testLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "Internal server error", body.Error)
}
