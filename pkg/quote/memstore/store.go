// Package memstore provides an in-memory LocationStore for tests and for
// running the service without a database.
package memstore

import (
	"context"
	"sync"

	"github.com/northmart/shipquote/pkg/quote"
)

// Store is an in-memory LocationStore. Safe for concurrent readers and
// writers; writers replace whole collections.
type Store struct {
	mu         sync.RWMutex
	cities     []quote.AllowedCity
	warehouses []quote.Location
	zones      map[int64]quote.ShippingZone
	rates      []quote.ShippingRate
}

// New creates an empty store.
func New() *Store {
	return &Store{zones: make(map[int64]quote.ShippingZone)}
}

// SetAllowedCities replaces the allow-list.
func (s *Store) SetAllowedCities(cities []quote.AllowedCity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = cities
}

// SetWarehouses replaces the warehouse set.
func (s *Store) SetWarehouses(locations []quote.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses = locations
}

// SetZone adds or replaces a zone.
func (s *Store) SetZone(z quote.ShippingZone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[z.ID] = z
}

// SetRates replaces the rate table.
func (s *Store) SetRates(rates []quote.ShippingRate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = rates
}

// ListActiveAllowedCities implements quote.LocationStore.
func (s *Store) ListActiveAllowedCities(ctx context.Context) ([]quote.AllowedCity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]quote.AllowedCity, 0, len(s.cities))
	for _, c := range s.cities {
		if c.IsActive {
			result = append(result, c)
		}
	}
	return result, nil
}

// ListWarehouseLocations implements quote.LocationStore.
func (s *Store) ListWarehouseLocations(ctx context.Context) ([]quote.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]quote.Location, 0, len(s.warehouses))
	for _, l := range s.warehouses {
		if l.IsWarehouse {
			result = append(result, l)
		}
	}
	return result, nil
}

// GetZoneByID implements quote.LocationStore.
func (s *Store) GetZoneByID(ctx context.Context, id int64) (*quote.ShippingZone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if z, ok := s.zones[id]; ok {
		return &z, nil
	}
	return nil, nil
}

// ListActiveRatesForZone implements quote.LocationStore.
func (s *Store) ListActiveRatesForZone(ctx context.Context, zoneID int64) ([]quote.ShippingRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]quote.ShippingRate, 0, len(s.rates))
	for _, r := range s.rates {
		if r.IsActive && r.ZoneID == zoneID {
			result = append(result, r)
		}
	}
	return result, nil
}

// ListAllActiveRates implements quote.LocationStore.
func (s *Store) ListAllActiveRates(ctx context.Context) ([]quote.ShippingRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]quote.ShippingRate, 0, len(s.rates))
	for _, r := range s.rates {
		if r.IsActive {
			result = append(result, r)
		}
	}
	return result, nil
}

// NewSeeded returns a store pre-loaded with a small Greater Toronto Area
// fixture: one downtown warehouse, a 60 km zone and three distance tiers.
// Used by the memory store mode and by examples.
func NewSeeded() *Store {
	s := New()
	zoneID := int64(1)

	s.SetAllowedCities([]quote.AllowedCity{
		{CityName: "Toronto", Province: "ON", IsActive: true},
		{CityName: "Mississauga", Province: "ON", IsActive: true},
		{CityName: "Brampton", Province: "ON", IsActive: true},
		{CityName: "Markham", Province: "ON", IsActive: true},
		{CityName: "Vaughan", Province: "ON", IsActive: true},
		{CityName: "Scarborough", Province: "ON", IsActive: true},
		{CityName: "Etobicoke", Province: "ON", IsActive: true},
	})
	s.SetZone(quote.ShippingZone{ID: zoneID, Name: "GTA", MaxDistanceLimit: 60})
	s.SetWarehouses([]quote.Location{
		{
			ID:          1,
			City:        "Toronto",
			Province:    "ON",
			Country:     "CA",
			Latitude:    "43.6532",
			Longitude:   "-79.3832",
			IsWarehouse: true,
			ZoneID:      &zoneID,
		},
	})
	s.SetRates([]quote.ShippingRate{
		{ID: 1, ZoneID: zoneID, MinDistance: 0, MaxDistance: 10, BaseRate: 1000, AdditionalRatePerKm: 0, AdditionalRatePerKg: 50, IsActive: true},
		{ID: 2, ZoneID: zoneID, MinDistance: 10, MaxDistance: 30, BaseRate: 1500, AdditionalRatePerKm: 40, AdditionalRatePerKg: 50, IsActive: true},
		{ID: 3, ZoneID: zoneID, MinDistance: 30, MaxDistance: 60, BaseRate: 2200, AdditionalRatePerKm: 60, AdditionalRatePerKg: 50, IsActive: true},
	})
	return s
}
