package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Store
	StoreBackend string        `envconfig:"STORE_BACKEND" default:"postgres"` // postgres | memory
	DatabaseDSN  string        `envconfig:"DATABASE_DSN"`
	DBMaxConns   int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	DBMinConns   int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"60s"`

	// Engine
	FlatRateMinorUnits   int64   `envconfig:"DEFAULT_FLAT_RATE_CENTS" default:"2000"`
	MaxDistanceCeilingKm float64 `envconfig:"MAX_DISTANCE_CEILING_KM" default:"60"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"shipquote"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from the environment. A local .env file, when
// present, is loaded first and never overrides real environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.StoreBackend == "postgres" && cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required with the postgres store backend")
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.String("store.backend", c.StoreBackend),
	}
}
