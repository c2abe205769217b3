package cached_test

import (
	"context"
	"testing"
	"time"

	"github.com/northmart/shipquote/pkg/quote"
	"github.com/northmart/shipquote/pkg/quote/cached"
	"github.com/northmart/shipquote/pkg/quote/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a store and counts calls that reach it.
type countingStore struct {
	*memstore.Store
	calls int
}

func (c *countingStore) ListActiveAllowedCities(ctx context.Context) ([]quote.AllowedCity, error) {
	c.calls++
	return c.Store.ListActiveAllowedCities(ctx)
}

func (c *countingStore) GetZoneByID(ctx context.Context, id int64) (*quote.ShippingZone, error) {
	c.calls++
	return c.Store.GetZoneByID(ctx, id)
}

func TestCached_ReadThrough(t *testing.T) {
	inner := &countingStore{Store: memstore.NewSeeded()}
	s := cached.New(inner, time.Minute)
	ctx := context.Background()

	first, err := s.ListActiveAllowedCities(ctx)
	require.NoError(t, err)
	second, err := s.ListActiveAllowedCities(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second read should hit the cache")
}

func TestCached_ZonesCachedPerID(t *testing.T) {
	inner := &countingStore{Store: memstore.NewSeeded()}
	s := cached.New(inner, time.Minute)
	ctx := context.Background()

	_, err := s.GetZoneByID(ctx, 1)
	require.NoError(t, err)
	_, err = s.GetZoneByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	_, err = s.GetZoneByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "different zone id misses the cache")
}

func TestCached_FlushForcesReload(t *testing.T) {
	inner := &countingStore{Store: memstore.NewSeeded()}
	s := cached.New(inner, time.Minute)
	ctx := context.Background()

	_, err := s.ListActiveAllowedCities(ctx)
	require.NoError(t, err)
	s.Flush()
	_, err = s.ListActiveAllowedCities(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCached_SeesUpdatesAfterExpiry(t *testing.T) {
	inner := memstore.New()
	inner.SetAllowedCities([]quote.AllowedCity{{CityName: "Toronto", IsActive: true}})
	s := cached.New(inner, 10*time.Millisecond)
	ctx := context.Background()

	cities, err := s.ListActiveAllowedCities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 1)

	inner.SetAllowedCities([]quote.AllowedCity{
		{CityName: "Toronto", IsActive: true},
		{CityName: "Ottawa", IsActive: true},
	})
	time.Sleep(20 * time.Millisecond)

	cities, err = s.ListActiveAllowedCities(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, 2)
}

func TestCached_ImplementsLocationStore(t *testing.T) {
	var _ quote.LocationStore = cached.New(memstore.New(), time.Minute)
}
