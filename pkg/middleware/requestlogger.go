package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Priyanshi004/Schedula-sub001/pkg/logger"
)

// PatientIDHeader identifies the acting patient when a client supplies one.
// It is informational only and never used for authorization.
const PatientIDHeader = "X-Patient-ID"

// RequestLogger stores a logger enriched with correlation_id, patient_id,
// trace_id and span_id in the request context. Mount it after
// RequestLogging and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := r.Header.Get(PatientIDHeader); id != "" {
				ctx = logger.WithPatientID(ctx, id)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
