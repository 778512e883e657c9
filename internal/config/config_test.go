package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.BreakerTimeout())
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Contains(t, cfg.PprofAllowedCIDRs, "127.0.0.0/8")
	assert.Empty(t, cfg.TrustedProxyCIDRs)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"SCHEDULA_HTTP_PORT":  "9090",
		"STORE_BACKEND":       "postgres",
		"SCHEDULA_DB_NAME":    "schedula_test",
		"POSTGRES_PASSWORD":   "pw",
		"KAFKA_ENABLED":       "true",
		"KAFKA_BROKERS":       "k1:9092,k2:9092",
		"OTEL_SAMPLE_RATE":    "0.25",
		"TRUSTED_PROXY_CIDRS": "10.0.0.0/8,172.16.0.0/12",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.0/12"}, cfg.TrustedProxyCIDRs)

	pg := cfg.Postgres()
	assert.Equal(t, "schedula_test", pg.DBName)
	assert.Equal(t, "pw", pg.Password)
	assert.Equal(t, int32(10), pg.MaxConns)

	tc := cfg.Tracing("schedula")
	assert.Equal(t, 0.25, tc.SampleRate)
	assert.Equal(t, "schedula", tc.ServiceName)
}

func TestLoadFrom_Redis(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"REDIS_ADDR":    "redis.internal:6380",
		"REDIS_DB":      "2",
		"REDIS_TIMEOUT": "750ms",
	})
	require.NoError(t, err)

	rc := cfg.Redis()
	assert.Equal(t, "redis.internal:6380", rc.Addr)
	assert.Equal(t, 2, rc.DB)
	assert.Equal(t, 750*time.Millisecond, rc.DialTimeout)
	assert.Equal(t, 750*time.Millisecond, rc.ReadTimeout)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		wantErr string
	}{
		{"port zero", map[string]string{"SCHEDULA_HTTP_PORT": "0"}, "invalid HTTP port"},
		{"port not a number", map[string]string{"SCHEDULA_HTTP_PORT": "http"}, "load schedula config"},
		{"unknown backend", map[string]string{"STORE_BACKEND": "mongo"}, "STORE_BACKEND must be one of"},
		{"sample rate", map[string]string{"OTEL_SAMPLE_RATE": "2.0"}, "OTEL_SAMPLE_RATE must be between 0.0 and 1.0"},
		{"rate limit", map[string]string{"RATE_LIMIT_RPS": "0"}, "RATE_LIMIT_RPS"},
		{"breaker", map[string]string{"BREAKER_TIMEOUT_SECONDS": "0"}, "BREAKER_TIMEOUT_SECONDS"},
		{"request timeout", map[string]string{"REQUEST_TIMEOUT": "0s"}, "REQUEST_TIMEOUT must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(tt.environ)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
}
