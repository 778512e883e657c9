package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/Priyanshi004/Schedula-sub001/pkg/errors"
)

// decodeJSON reads the request body into dst. Any failure is a 400.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return apperrors.InvalidInput("Request body is required")
	case errors.As(err, &maxErr):
		return apperrors.InvalidInput("Request body too large")
	default:
		return apperrors.InvalidInput("Invalid request body")
	}
}
