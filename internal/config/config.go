package config

import (
	"fmt"
	"slices"
	"time"

	pkgconfig "github.com/Priyanshi004/Schedula-sub001/pkg/config"
	"github.com/Priyanshi004/Schedula-sub001/pkg/database"
	"github.com/Priyanshi004/Schedula-sub001/pkg/tracing"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the schedula service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort           int           `env:"SCHEDULA_HTTP_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	// Peers whose X-Forwarded-For / X-Real-IP headers the rate limiter trusts.
	TrustedProxyCIDRs []string `env:"TRUSTED_PROXY_CIDRS" envSeparator:","`
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128,10.0.0.0/8,172.16.0.0/12,192.168.0.0/16" envSeparator:","`

	// Record store
	StoreBackend          string `env:"STORE_BACKEND" envDefault:"file"`
	DataDir               string `env:"DATA_DIR" envDefault:"./data"`
	BreakerTimeoutSeconds int    `env:"BREAKER_TIMEOUT_SECONDS" envDefault:"30"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	// Dial, read and write deadline for each redis call.
	RedisTimeout time.Duration `env:"REDIS_TIMEOUT" envDefault:"3s"`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"schedula"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"schedula_secret"`
	PostgresDB       string `env:"SCHEDULA_DB_NAME" envDefault:"schedula_db"`
	PostgresSSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load schedula config: %w", err)
	}
	return finish(cfg)
}

// LoadFrom reads configuration from environ only.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadFrom(cfg, environ); err != nil {
		return nil, fmt.Errorf("load schedula config: %w", err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !slices.Contains([]string{BackendFile, BackendMemory, BackendRedis, BackendPostgres}, c.StoreBackend) {
		return fmt.Errorf("STORE_BACKEND must be one of file, memory, redis, postgres: got %q", c.StoreBackend)
	}
	if c.StoreBackend == BackendFile && c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required for the file store")
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0: got %v", c.OTELSampleRate)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive: got %s", c.RequestTimeout)
	}
	if c.BreakerTimeoutSeconds < 1 {
		return fmt.Errorf("BREAKER_TIMEOUT_SECONDS must be positive: got %d", c.BreakerTimeoutSeconds)
	}
	return nil
}

// BreakerTimeout is how long a tripped store breaker stays open.
func (c *Config) BreakerTimeout() time.Duration {
	return time.Duration(c.BreakerTimeoutSeconds) * time.Second
}

// Postgres returns pool settings for the postgres backend.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPassword
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSLMode
	return pg
}

// Redis returns client settings for the redis backend.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Addr:         c.RedisAddr,
		Password:     c.RedisPass,
		DB:           c.RedisDB,
		DialTimeout:  c.RedisTimeout,
		ReadTimeout:  c.RedisTimeout,
		WriteTimeout: c.RedisTimeout,
	}
}

// Tracing returns exporter settings for serviceName.
func (c *Config) Tracing(serviceName string) tracing.Config {
	tc := tracing.DefaultConfig(serviceName)
	tc.Environment = c.Environment
	tc.OTLPEndpoint = c.OTELEndpoint
	tc.SampleRate = c.OTELSampleRate
	tc.Enabled = c.OTELEnabled
	return tc
}
