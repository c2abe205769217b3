package quote

import (
	"context"
)

// LocationStore is the read-only persistence collaborator behind the
// engine. All five operations return current data; the engine needs no
// snapshot isolation since quotes are advisory estimates.
type LocationStore interface {
	// ListActiveAllowedCities returns the active delivery allow-list.
	ListActiveAllowedCities(ctx context.Context) ([]AllowedCity, error)

	// ListWarehouseLocations returns all locations flagged as warehouses.
	ListWarehouseLocations(ctx context.Context) ([]Location, error)

	// GetZoneByID returns a zone, or nil when the id is unknown.
	GetZoneByID(ctx context.Context, id int64) (*ShippingZone, error)

	// ListActiveRatesForZone returns active rates scoped to one zone.
	ListActiveRatesForZone(ctx context.Context, zoneID int64) ([]ShippingRate, error)

	// ListAllActiveRates returns every active rate across zones, for the
	// zone-less fallback path.
	ListAllActiveRates(ctx context.Context) ([]ShippingRate, error)
}
