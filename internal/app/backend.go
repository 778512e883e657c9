package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Priyanshi004/Schedula-sub001/internal/config"
	"github.com/Priyanshi004/Schedula-sub001/internal/storage"
	"github.com/Priyanshi004/Schedula-sub001/internal/storage/breaker"
	"github.com/Priyanshi004/Schedula-sub001/internal/storage/file"
	"github.com/Priyanshi004/Schedula-sub001/internal/storage/instrumented"
	"github.com/Priyanshi004/Schedula-sub001/internal/storage/memory"
	pgstore "github.com/Priyanshi004/Schedula-sub001/internal/storage/postgres"
	redisstore "github.com/Priyanshi004/Schedula-sub001/internal/storage/redis"
	"github.com/Priyanshi004/Schedula-sub001/migrations"
	"github.com/Priyanshi004/Schedula-sub001/pkg/database"
)

const slowQueryThreshold = 200 * time.Millisecond

// Backend is an opened blob store together with whatever must be closed
// after it.
type Backend struct {
	Store storage.BlobStore
	Name  string

	closers []func()
}

// Close releases the connections behind the store.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// OpenBackend connects the blob store selected by cfg.StoreBackend. Network
// backends are wrapped in a circuit breaker; every backend is instrumented.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	b := &Backend{Name: cfg.StoreBackend}

	var store storage.BlobStore
	switch cfg.StoreBackend {
	case config.BackendMemory:
		store = memory.New()

	case config.BackendFile:
		fs, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store = fs
		logger.Info("using file record store", slog.String("data_dir", cfg.DataDir))

	case config.BackendRedis:
		client, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		store = guard(redisstore.New(client), cfg, logger)
		logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	case config.BackendPostgres:
		pgCfg := cfg.Postgres()
		pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)

		if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
			b.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, ServiceName); err != nil {
			logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
		}
		database.SetSlowQueryLogging(slowQueryThreshold, logger)

		store = guard(pgstore.New(pool), cfg, logger)
		logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	b.Store = instrumented.New(store, cfg.StoreBackend)
	return b, nil
}

func guard(store storage.BlobStore, cfg *config.Config, logger *slog.Logger) storage.BlobStore {
	bc := breaker.DefaultConfig("store-" + cfg.StoreBackend)
	bc.Timeout = cfg.BreakerTimeout()
	return breaker.New(store, bc, logger)
}
