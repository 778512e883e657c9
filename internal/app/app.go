package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Priyanshi004/Schedula-sub001/internal/config"
	"github.com/Priyanshi004/Schedula-sub001/internal/domain"
	"github.com/Priyanshi004/Schedula-sub001/internal/event"
	handler "github.com/Priyanshi004/Schedula-sub001/internal/handler/http"
	"github.com/Priyanshi004/Schedula-sub001/internal/repository"
	"github.com/Priyanshi004/Schedula-sub001/internal/repository/blob"
	"github.com/Priyanshi004/Schedula-sub001/internal/service"
	"github.com/Priyanshi004/Schedula-sub001/internal/storage"
	"github.com/Priyanshi004/Schedula-sub001/pkg/health"
	pkgkafka "github.com/Priyanshi004/Schedula-sub001/pkg/kafka"
	"github.com/Priyanshi004/Schedula-sub001/pkg/middleware"
	"github.com/Priyanshi004/Schedula-sub001/pkg/tracing"
)

// ServiceName labels logs, metrics, traces and events.
const ServiceName = "schedula-api"

// Services is the domain layer over one blob store.
type Services struct {
	Reviews      *service.ReviewService
	Appointments *service.AppointmentService
}

// NewServices builds both services over store, publishing through events.
func NewServices(store storage.BlobStore, events *event.Producer, clock service.Clock, logger *slog.Logger) *Services {
	reviews := blob.NewCollection[domain.Review](store, repository.ReviewsKey)
	appointments := blob.NewCollection[domain.Appointment](store, repository.AppointmentsKey)

	return &Services{
		Reviews:      service.NewReviewService(reviews, events, clock, logger),
		Appointments: service.NewAppointmentService(appointments, events, clock, logger),
	}
}

// App wires together all dependencies and runs the schedula service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	backend        *Backend
	producer       *pkgkafka.Producer
	stopTracer     func(context.Context) error
	stopBackground context.CancelFunc
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stopTracer, err := tracing.InitTracer(ctx, cfg.Tracing(ServiceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		_ = stopTracer(context.Background())
		return nil, fmt.Errorf("open record store: %w", err)
	}

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("store", backend.Store.Ping)

	// Kafka is optional; without it events are dropped.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher = event.NopPublisher{}
	)
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = producer
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	services := NewServices(backend.Store, event.NewProducer(publisher, logger), time.Now, logger)

	bgCtx, stopBackground := context.WithCancel(context.Background())

	router := handler.NewRouter(handler.RouterConfig{
		ServiceName:    ServiceName,
		Reviews:        services.Reviews,
		Appointments:   services.Appointments,
		Health:         healthHandler,
		Logger:         logger,
		CORS:           corsConfig(cfg),
		RequestTimeout: cfg.RequestTimeout,
		RateLimit:      middleware.RateLimit(bgCtx, cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxyCIDRs, logger),
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		backend:        backend,
		producer:       producer,
		stopTracer:     stopTracer,
		stopBackground: stopBackground,
		httpServer:     httpServer,
	}, nil
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	cc := middleware.DefaultCORSConfig()
	cc.AllowedOrigins = cfg.CORSAllowedOrigins
	return cc
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("store_backend", a.backend.Name),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}
	a.stopBackground()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	a.backend.Close()

	if err := a.stopTracer(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
