package quote

// AllowedCity is a single entry of the delivery allow-list. Entries are
// admin-managed and read-only to the engine; cityName is case-insensitively
// unique among active entries.
type AllowedCity struct {
	CityName string
	Province string
	IsActive bool
}

// Location is a stored geographic record. Only warehouse locations
// (IsWarehouse = true) participate in quoting; latitude/longitude are kept
// as decimal strings exactly as stored and parsed per quote.
type Location struct {
	ID          int64
	City        string
	Province    string
	Country     string
	PostalCode  string
	Latitude    string
	Longitude   string
	IsWarehouse bool
	ZoneID      *int64
}

// ShippingZone groups rates and caps delivery radius.
// MaxDistanceLimit is in km; 0 means unlimited.
type ShippingZone struct {
	ID               int64
	Name             string
	MaxDistanceLimit float64
}

// ShippingRate is a distance-and-weight-tiered price row. Distances are km
// (inclusive range), money is integer minor currency units, weights grams.
// Active rates within a zone should not overlap, but selection tolerates
// overlap by taking the first match.
type ShippingRate struct {
	ID                  int64
	ZoneID              int64
	MinDistance         float64
	MaxDistance         float64
	BaseRate            int64
	AdditionalRatePerKm int64
	MinWeight           int64
	MaxWeight           int64
	AdditionalRatePerKg int64
	IsActive            bool
}

// Coordinates is a geographic point in decimal degrees (WGS 84).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Request describes one shipping quote computation. It is constructed per
// call and never persisted.
type Request struct {
	City        string
	Province    string
	Country     string
	PostalCode  string
	WeightGrams int64
}

// Result is the outcome of a quote: either a positive cost in minor
// currency units, or Unavailable with a display reason.
type Result struct {
	QuoteID        string
	CostMinorUnits int64
	Unavailable    bool
	Reason         string

	// DistanceKm is the distance to the winning warehouse, rounded to two
	// decimals for display. Zero when unavailable or when the flat
	// fallback applied.
	DistanceKm float64
}

// warehouseOutcome is the per-warehouse evaluation result inside a single
// quote computation.
type warehouseOutcome struct {
	reachable  bool
	cost       int64
	distanceKm float64
}
