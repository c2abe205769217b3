package memstore_test

import (
	"context"
	"testing"

	"github.com/northmart/shipquote/pkg/quote"
	"github.com/northmart/shipquote/pkg/quote/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_FiltersInactiveCities(t *testing.T) {
	s := memstore.New()
	s.SetAllowedCities([]quote.AllowedCity{
		{CityName: "Toronto", IsActive: true},
		{CityName: "Windsor", IsActive: false},
	})

	cities, err := s.ListActiveAllowedCities(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Toronto", cities[0].CityName)
}

func TestStore_FiltersNonWarehouseLocations(t *testing.T) {
	s := memstore.New()
	s.SetWarehouses([]quote.Location{
		{ID: 1, City: "Toronto", IsWarehouse: true},
		{ID: 2, City: "Ottawa", IsWarehouse: false},
	})

	warehouses, err := s.ListWarehouseLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, warehouses, 1)
	assert.Equal(t, int64(1), warehouses[0].ID)
}

func TestStore_GetZoneByID(t *testing.T) {
	s := memstore.New()
	s.SetZone(quote.ShippingZone{ID: 7, Name: "GTA", MaxDistanceLimit: 60})

	zone, err := s.GetZoneByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, zone)
	assert.Equal(t, "GTA", zone.Name)

	missing, err := s.GetZoneByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_RateScoping(t *testing.T) {
	s := memstore.New()
	s.SetRates([]quote.ShippingRate{
		{ID: 1, ZoneID: 1, IsActive: true},
		{ID: 2, ZoneID: 2, IsActive: true},
		{ID: 3, ZoneID: 1, IsActive: false},
	})

	zone1, err := s.ListActiveRatesForZone(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, zone1, 1)
	assert.Equal(t, int64(1), zone1[0].ID)

	all, err := s.ListAllActiveRates(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNewSeeded(t *testing.T) {
	s := memstore.NewSeeded()
	ctx := context.Background()

	cities, err := s.ListActiveAllowedCities(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, cities)

	warehouses, err := s.ListWarehouseLocations(ctx)
	require.NoError(t, err)
	require.Len(t, warehouses, 1)
	require.NotNil(t, warehouses[0].ZoneID)

	zone, err := s.GetZoneByID(ctx, *warehouses[0].ZoneID)
	require.NoError(t, err)
	require.NotNil(t, zone)

	rates, err := s.ListActiveRatesForZone(ctx, zone.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, rates)
}
