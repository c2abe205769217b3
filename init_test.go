package main

import (
	"context"
	"testing"
	"time"

	"github.com/northmart/shipquote/internal/config"
	"github.com/northmart/shipquote/pkg/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		StoreBackend:         "memory",
		CacheTTL:             time.Minute,
		FlatRateMinorUnits:   2000,
		MaxDistanceCeilingKm: 60,
	}
}

func TestInitStore_Memory(t *testing.T) {
	logger := otelzap.New(zap.NewNop())

	store, closeStore, err := initStore(context.Background(), testConfig(), logger)
	require.NoError(t, err)
	defer closeStore()

	cities, err := store.ListActiveAllowedCities(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, cities)
}

func TestInitStore_UnknownBackend(t *testing.T) {
	logger := otelzap.New(zap.NewNop())
	cfg := testConfig()
	cfg.StoreBackend = "mongodb"

	_, _, err := initStore(context.Background(), cfg, logger)
	assert.Error(t, err)
}

func TestInitQuoter(t *testing.T) {
	logger := otelzap.New(zap.NewNop())
	store, closeStore, err := initStore(context.Background(), testConfig(), logger)
	require.NoError(t, err)
	defer closeStore()

	quoter := initQuoter(testConfig(), store, logger, nil)
	require.NotNil(t, quoter)

	result, err := quoter.Quote(context.Background(), quote.Request{
		City: "Toronto", Province: "ON", Country: "CA",
	})
	require.NoError(t, err)
	assert.False(t, result.Unavailable)
}

func TestInitQuoter_NegativeCeilingDisabled(t *testing.T) {
	logger := otelzap.New(zap.NewNop())
	cfg := testConfig()
	cfg.MaxDistanceCeilingKm = -5

	store, closeStore, err := initStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer closeStore()

	quoter := initQuoter(cfg, store, logger, nil)
	require.NotNil(t, quoter)
}
