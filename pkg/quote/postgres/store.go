// Package postgres provides a pgx-backed LocationStore reading the four
// admin-managed shipping tables.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/northmart/shipquote/pkg/quote"
)

// Config holds connection pool settings.
type Config struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// Store reads shipping reference data from PostgreSQL. All operations are
// plain reads; mutations happen through the separate admin application.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a pool and verifies it with a ping.
func New(ctx context.Context, cfg Config) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool. The caller keeps ownership.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// ListActiveAllowedCities implements quote.LocationStore.
func (s *Store) ListActiveAllowedCities(ctx context.Context) ([]quote.AllowedCity, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT city_name, province, is_active
		FROM allowed_cities
		WHERE is_active = true
		ORDER BY city_name`)
	if err != nil {
		return nil, fmt.Errorf("querying allowed cities: %w", err)
	}
	defer rows.Close()

	var result []quote.AllowedCity
	for rows.Next() {
		var c quote.AllowedCity
		if err := rows.Scan(&c.CityName, &c.Province, &c.IsActive); err != nil {
			return nil, fmt.Errorf("scanning allowed city: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// ListWarehouseLocations implements quote.LocationStore.
func (s *Store) ListWarehouseLocations(ctx context.Context) ([]quote.Location, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, city, province, country, COALESCE(postal_code, ''),
		       latitude, longitude, is_warehouse, zone_id
		FROM locations
		WHERE is_warehouse = true
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying warehouses: %w", err)
	}
	defer rows.Close()

	var result []quote.Location
	for rows.Next() {
		var l quote.Location
		if err := rows.Scan(&l.ID, &l.City, &l.Province, &l.Country, &l.PostalCode,
			&l.Latitude, &l.Longitude, &l.IsWarehouse, &l.ZoneID); err != nil {
			return nil, fmt.Errorf("scanning warehouse: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// GetZoneByID implements quote.LocationStore. Returns nil, nil when the
// zone does not exist.
func (s *Store) GetZoneByID(ctx context.Context, id int64) (*quote.ShippingZone, error) {
	var z quote.ShippingZone
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, max_distance_limit
		FROM shipping_zones
		WHERE id = $1`, id).Scan(&z.ID, &z.Name, &z.MaxDistanceLimit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying zone %d: %w", id, err)
	}
	return &z, nil
}

// ListActiveRatesForZone implements quote.LocationStore.
func (s *Store) ListActiveRatesForZone(ctx context.Context, zoneID int64) ([]quote.ShippingRate, error) {
	return s.queryRates(ctx, `
		SELECT id, zone_id, min_distance, max_distance, base_rate,
		       additional_rate_per_km, COALESCE(min_weight, 0),
		       COALESCE(max_weight, 0), COALESCE(additional_rate_per_kg, 0),
		       is_active
		FROM shipping_rates
		WHERE is_active = true AND zone_id = $1
		ORDER BY min_distance, id`, zoneID)
}

// ListAllActiveRates implements quote.LocationStore.
func (s *Store) ListAllActiveRates(ctx context.Context) ([]quote.ShippingRate, error) {
	return s.queryRates(ctx, `
		SELECT id, zone_id, min_distance, max_distance, base_rate,
		       additional_rate_per_km, COALESCE(min_weight, 0),
		       COALESCE(max_weight, 0), COALESCE(additional_rate_per_kg, 0),
		       is_active
		FROM shipping_rates
		WHERE is_active = true
		ORDER BY min_distance, id`)
}

func (s *Store) queryRates(ctx context.Context, sql string, args ...any) ([]quote.ShippingRate, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying rates: %w", err)
	}
	defer rows.Close()

	var result []quote.ShippingRate
	for rows.Next() {
		var r quote.ShippingRate
		if err := rows.Scan(&r.ID, &r.ZoneID, &r.MinDistance, &r.MaxDistance,
			&r.BaseRate, &r.AdditionalRatePerKm, &r.MinWeight, &r.MaxWeight,
			&r.AdditionalRatePerKg, &r.IsActive); err != nil {
			return nil, fmt.Errorf("scanning rate: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
