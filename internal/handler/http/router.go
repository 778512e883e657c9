package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Priyanshi004/Schedula-sub001/internal/service"
	"github.com/Priyanshi004/Schedula-sub001/pkg/health"
	"github.com/Priyanshi004/Schedula-sub001/pkg/middleware"
)

// RouterConfig carries everything NewRouter mounts.
type RouterConfig struct {
	ServiceName  string
	Reviews      *service.ReviewService
	Appointments *service.AppointmentService
	Health       *health.Handler
	Logger       *slog.Logger

	CORS           middleware.CORSConfig
	RequestTimeout time.Duration

	// RateLimit guards mutating routes. Nil disables it.
	RateLimit func(http.Handler) http.Handler

	// PprofCIDRs enables /debug/pprof for these networks. Empty disables it.
	PprofCIDRs []string
}

// NewRouter creates a chi router with all schedula routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := cfg.RateLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(timeout))

	// Health check endpoints
	if cfg.Health != nil {
		r.Get("/health/live", cfg.Health.LivenessHandler())
		r.Get("/health/ready", cfg.Health.ReadinessHandler())
	}
	r.Handle("/metrics", promhttp.Handler())

	if len(cfg.PprofCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	reviewHandler := NewReviewHandler(cfg.Reviews, logger)
	r.Route("/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", reviewHandler.ListReviews)
		r.Get("/summary", reviewHandler.ReviewSummaries)
		r.Get("/{id}", reviewHandler.GetReview)

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/", reviewHandler.CreateReview)
			r.Put("/{id}", reviewHandler.UpdateReview)
			r.Delete("/{id}", reviewHandler.DeleteReview)
		})
	})

	appointmentHandler := NewAppointmentHandler(cfg.Appointments, logger)
	r.Route("/appointments", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", appointmentHandler.ListAppointments)
		r.Get("/{id}", appointmentHandler.GetAppointment)

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/", appointmentHandler.BookAppointment)
			r.Put("/{id}", appointmentHandler.RescheduleAppointment)
			r.Delete("/{id}", appointmentHandler.DeleteAppointment)
			r.Post("/{id}/cancel", appointmentHandler.CancelAppointment)
			r.Post("/{id}/complete", appointmentHandler.CompleteAppointment)
		})
	})

	return r
}
