// Package cached decorates a LocationStore with a read-through TTL cache.
// Shipping reference data changes rarely and quotes are advisory, so
// best-effort staleness within the TTL is acceptable.
package cached

import (
	"context"
	"fmt"
	"time"

	"github.com/northmart/shipquote/pkg/quote"
	gocache "github.com/patrickmn/go-cache"
)

const (
	keyAllowedCities = "allowed_cities"
	keyWarehouses    = "warehouses"
	keyAllRates      = "all_rates"
)

// Store wraps another LocationStore, caching each read for a fixed TTL.
type Store struct {
	next  quote.LocationStore
	cache *gocache.Cache
}

// New creates a caching decorator around next.
func New(next quote.LocationStore, ttl time.Duration) *Store {
	return &Store{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Flush drops every cached entry. Intended for admin-triggered refresh.
func (s *Store) Flush() {
	s.cache.Flush()
}

// ListActiveAllowedCities implements quote.LocationStore.
func (s *Store) ListActiveAllowedCities(ctx context.Context) ([]quote.AllowedCity, error) {
	if v, ok := s.cache.Get(keyAllowedCities); ok {
		return v.([]quote.AllowedCity), nil
	}
	cities, err := s.next.ListActiveAllowedCities(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(keyAllowedCities, cities)
	return cities, nil
}

// ListWarehouseLocations implements quote.LocationStore.
func (s *Store) ListWarehouseLocations(ctx context.Context) ([]quote.Location, error) {
	if v, ok := s.cache.Get(keyWarehouses); ok {
		return v.([]quote.Location), nil
	}
	locations, err := s.next.ListWarehouseLocations(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(keyWarehouses, locations)
	return locations, nil
}

// GetZoneByID implements quote.LocationStore.
func (s *Store) GetZoneByID(ctx context.Context, id int64) (*quote.ShippingZone, error) {
	key := fmt.Sprintf("zone:%d", id)
	if v, ok := s.cache.Get(key); ok {
		return v.(*quote.ShippingZone), nil
	}
	zone, err := s.next.GetZoneByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, zone)
	return zone, nil
}

// ListActiveRatesForZone implements quote.LocationStore.
func (s *Store) ListActiveRatesForZone(ctx context.Context, zoneID int64) ([]quote.ShippingRate, error) {
	key := fmt.Sprintf("zone_rates:%d", zoneID)
	if v, ok := s.cache.Get(key); ok {
		return v.([]quote.ShippingRate), nil
	}
	rates, err := s.next.ListActiveRatesForZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, rates)
	return rates, nil
}

// ListAllActiveRates implements quote.LocationStore.
func (s *Store) ListAllActiveRates(ctx context.Context) ([]quote.ShippingRate, error) {
	if v, ok := s.cache.Get(keyAllRates); ok {
		return v.([]quote.ShippingRate), nil
	}
	rates, err := s.next.ListAllActiveRates(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(keyAllRates, rates)
	return rates, nil
}
