package main

import (
	"context"
	"fmt"

	"github.com/northmart/shipquote/internal/config"
	"github.com/northmart/shipquote/internal/telemetry"
	"github.com/northmart/shipquote/pkg/quote"
	"github.com/northmart/shipquote/pkg/quote/cached"
	"github.com/northmart/shipquote/pkg/quote/memstore"
	"github.com/northmart/shipquote/pkg/quote/postgres"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(cfg *config.Config) (*otelzap.Logger, error) {
	return telemetry.NewLogger(cfg.LogLevel, cfg.ServiceName)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

// initStore builds the configured LocationStore backend, wrapped in the
// read-through TTL cache.
func initStore(ctx context.Context, cfg *config.Config, logger *otelzap.Logger) (quote.LocationStore, func(), error) {
	ttl := cfg.CacheTTL

	switch cfg.StoreBackend {
	case "memory":
		logger.Warn("Using in-memory seed store, quotes are not backed by real data")
		return cached.New(memstore.NewSeeded(), ttl), func() {}, nil

	case "postgres":
		pg, err := postgres.New(ctx, postgres.Config{
			DSN:      cfg.DatabaseDSN,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, nil, err
		}
		return cached.New(pg, ttl), pg.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func initQuoter(cfg *config.Config, store quote.LocationStore, logger *otelzap.Logger, tracer trace.Tracer) *quote.Quoter {
	opts := quote.Options{
		FlatRateMinorUnits:   cfg.FlatRateMinorUnits,
		MaxDistanceCeilingKm: cfg.MaxDistanceCeilingKm,
	}
	if opts.MaxDistanceCeilingKm < 0 {
		logger.Warn("Negative distance ceiling, disabling",
			zap.Float64("ceiling_km", opts.MaxDistanceCeilingKm))
		opts.MaxDistanceCeilingKm = 0
	}
	return quote.New(store, quote.NewStaticGeocoder(), opts, logger, tracer)
}
