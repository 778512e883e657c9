package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/Priyanshi004/Schedula-sub001/pkg/errors"
	"github.com/Priyanshi004/Schedula-sub001/pkg/logger"
)

// ErrorBody is the JSON body written for every failed request. Clients key
// off Error; Code and Fields are for programmatic handling.
type ErrorBody struct {
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// SuccessBody acknowledges a mutation, optionally echoing the affected record.
type SuccessBody struct {
	Success bool `json:"success"`
	Review  any  `json:"review,omitempty"`
}

const internalMessage = "Internal server error"

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status code and ErrorBody. 5xx responses
// are logged with the request-scoped logger and always carry a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}

	body := ErrorBody{
		Error:     internalMessage,
		Code:      "INTERNAL_ERROR",
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	}
	status := apperrors.HTTPStatus(err)

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		body.Error = appErr.Message
		body.Code = appErr.Code
		body.Fields = appErr.Fields
	case status == http.StatusNotFound:
		body.Error, body.Code = "Not found", "NOT_FOUND"
	case status == http.StatusBadRequest:
		body.Error, body.Code = err.Error(), "INVALID_INPUT"
	case status == http.StatusForbidden:
		body.Error, body.Code = "Forbidden", "FORBIDDEN"
	case status == http.StatusConflict:
		body.Error, body.Code = "Conflict", "CONFLICT"
	}

	if status >= http.StatusInternalServerError {
		body.Error = internalMessage
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, body)
}
