// Package quote implements the shipping-cost calculation engine: delivery
// allow-list gating, best-effort geocoding, great-circle distance from
// warehouse origins, and zone-scoped distance/weight-tiered rate selection
// aggregated across warehouses.
package quote

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine tunables. Explicit configuration, not literals, so tests and
// deployments can override them deterministically.
const (
	// DefaultFlatRateMinorUnits is charged when no warehouses are
	// configured at all; quoting degrades gracefully instead of failing
	// while administration is incomplete.
	DefaultFlatRateMinorUnits int64 = 2000

	// DefaultMaxDistanceCeilingKm is the hard safety bound on delivery
	// radius, independent of zone configuration.
	DefaultMaxDistanceCeilingKm float64 = 60
)

// Options configures a Quoter.
type Options struct {
	// FlatRateMinorUnits is the fallback cost when no warehouses exist.
	// Zero selects DefaultFlatRateMinorUnits.
	FlatRateMinorUnits int64

	// MaxDistanceCeilingKm caps delivery radius regardless of zone
	// limits. Zero or negative disables the ceiling.
	MaxDistanceCeilingKm float64
}

// Quoter computes shipping quotes. It is stateless per call: every Quote
// re-reads the allow-list, warehouses, zones and rates from the store, so
// concurrent calls need no coordination.
type Quoter struct {
	store    LocationStore
	geocoder Geocoder
	opts     Options
	logger   *otelzap.Logger
	tracer   trace.Tracer
}

// New creates a Quoter. tracer may be nil.
func New(store LocationStore, geocoder Geocoder, opts Options, logger *otelzap.Logger, tracer trace.Tracer) *Quoter {
	if opts.FlatRateMinorUnits == 0 {
		opts.FlatRateMinorUnits = DefaultFlatRateMinorUnits
	}
	return &Quoter{
		store:    store,
		geocoder: geocoder,
		opts:     opts,
		logger:   logger,
		tracer:   tracer,
	}
}

// Quote computes the delivery cost for one destination.
//
// The returned error covers client mistakes (ErrInvalidRequest) and store
// I/O failures only. Every business outcome, including "we cannot ship
// here" and internal configuration defects, terminates in a Result:
// defects are logged with full context and surfaced as a generic
// Unavailable so checkout never crashes and internal configuration state
// never leaks to end users.
func (q *Quoter) Quote(ctx context.Context, req Request) (*Result, error) {
	if q.tracer != nil {
		var span trace.Span
		ctx, span = q.tracer.Start(ctx, "quote.Quote")
		defer span.End()
	}

	quoteID := uuid.NewString()

	if strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.Province) == "" ||
		strings.TrimSpace(req.Country) == "" {
		return nil, fmt.Errorf("%w: city, province and country are required", ErrInvalidRequest)
	}

	warehouses, err := q.store.ListWarehouseLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing warehouses: %w", err)
	}
	if len(warehouses) == 0 {
		q.logger.Warn("No warehouses configured, applying flat fallback rate",
			zap.String("quote_id", quoteID),
			zap.Int64("flat_rate", q.opts.FlatRateMinorUnits),
		)
		return &Result{QuoteID: quoteID, CostMinorUnits: q.opts.FlatRateMinorUnits}, nil
	}

	cities, err := q.store.ListActiveAllowedCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing allowed cities: %w", err)
	}
	if !NewGate(cities).IsAllowed(req.City) {
		q.logger.Info("Destination city not on allow-list",
			zap.String("quote_id", quoteID),
			zap.String("city", req.City),
		)
		return unavailable(quoteID, ReasonOutsideRange), nil
	}

	dest, err := q.geocoder.Resolve(req.City)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			// The city cleared the allow-list, so missing coordinates are
			// a data-configuration defect, not a normal rejection.
			q.logger.Error("Allowed city has no resolvable coordinates",
				zap.String("quote_id", quoteID),
				zap.String("city", req.City),
				zap.String("province", req.Province),
			)
			return unavailable(quoteID, ReasonUnavailable), nil
		}
		return nil, fmt.Errorf("resolving city %q: %w", req.City, err)
	}

	limitKm, err := q.effectiveMaxDistance(ctx, warehouses[0])
	if err != nil {
		return nil, err
	}

	allRates, err := q.store.ListAllActiveRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rates: %w", err)
	}

	outcomes := make([]warehouseOutcome, len(warehouses))
	g, gctx := errgroup.WithContext(ctx)
	for i, wh := range warehouses {
		g.Go(func() error {
			out, err := q.evaluateWarehouse(gctx, quoteID, wh, dest, limitKm, req.WeightGrams, allRates)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return q.aggregate(quoteID, req, outcomes), nil
}

// effectiveMaxDistance combines the first warehouse's zone limit with the
// hard system ceiling. Zone limit 0 means unlimited.
func (q *Quoter) effectiveMaxDistance(ctx context.Context, first Location) (float64, error) {
	limit := q.opts.MaxDistanceCeilingKm
	if first.ZoneID == nil {
		return limit, nil
	}

	zone, err := q.store.GetZoneByID(ctx, *first.ZoneID)
	if err != nil {
		return 0, fmt.Errorf("loading zone %d: %w", *first.ZoneID, err)
	}
	if zone != nil && zone.MaxDistanceLimit > 0 {
		if limit <= 0 || zone.MaxDistanceLimit < limit {
			limit = zone.MaxDistanceLimit
		}
	}
	return limit, nil
}

// evaluateWarehouse yields the outcome of shipping from a single origin.
// Malformed stored coordinates and missing rate coverage are configuration
// defects: logged, then treated as unreachable so the aggregate policy
// decides the final answer. Only store I/O failures return an error.
func (q *Quoter) evaluateWarehouse(ctx context.Context, quoteID string, wh Location, dest Coordinates, limitKm float64, weightGrams int64, allRates []ShippingRate) (warehouseOutcome, error) {
	lat, latErr := strconv.ParseFloat(wh.Latitude, 64)
	lon, lonErr := strconv.ParseFloat(wh.Longitude, 64)
	if latErr != nil || lonErr != nil {
		q.logger.Error("Warehouse has malformed stored coordinates",
			zap.String("quote_id", quoteID),
			zap.Int64("warehouse_id", wh.ID),
			zap.String("latitude", wh.Latitude),
			zap.String("longitude", wh.Longitude),
		)
		return warehouseOutcome{}, nil
	}

	distKm, err := DistanceKm(lat, lon, dest.Lat, dest.Lon)
	if err != nil {
		q.logger.Error("Distance computation rejected warehouse coordinates",
			zap.String("quote_id", quoteID),
			zap.Int64("warehouse_id", wh.ID),
			zap.Error(err),
		)
		return warehouseOutcome{}, nil
	}

	if limitKm > 0 && distKm > limitKm {
		return warehouseOutcome{distanceKm: distKm}, nil
	}

	var zoneID int64
	var zoneRates []ShippingRate
	if wh.ZoneID != nil {
		zoneID = *wh.ZoneID
		zoneRates, err = q.store.ListActiveRatesForZone(ctx, zoneID)
		if err != nil {
			return warehouseOutcome{}, fmt.Errorf("listing rates for zone %d: %w", zoneID, err)
		}
	}

	rate := SelectRate(zoneID, distKm, zoneRates, allRates)
	if rate == nil {
		q.logger.Error("No shipping rate resolves for warehouse",
			zap.String("quote_id", quoteID),
			zap.Int64("warehouse_id", wh.ID),
			zap.Int64("zone_id", zoneID),
			zap.Float64("distance_km", Round2(distKm)),
			zap.Error(ErrNoRatesConfigured),
		)
		return warehouseOutcome{distanceKm: distKm}, nil
	}

	return warehouseOutcome{
		reachable:  true,
		cost:       ComputeCost(rate, distKm, weightGrams),
		distanceKm: distKm,
	}, nil
}

// aggregate applies the cross-warehouse decision policy: everything
// unreachable means unavailable, a majority unreachable is treated as
// effectively out of range even when a minority quoted a cost, otherwise
// the cheapest reachable origin wins. A non-positive winning cost is a
// computation anomaly and never reaches the caller as a price.
func (q *Quoter) aggregate(quoteID string, req Request, outcomes []warehouseOutcome) *Result {
	n := len(outcomes)
	unreachable := 0
	for _, o := range outcomes {
		if !o.reachable {
			unreachable++
		}
	}

	if unreachable == n || unreachable*2 > n {
		q.logger.Info("Destination out of delivery range",
			zap.String("quote_id", quoteID),
			zap.String("city", req.City),
			zap.Int("warehouses", n),
			zap.Int("unreachable", unreachable),
		)
		return unavailable(quoteID, ReasonOutsideRange)
	}

	best := warehouseOutcome{}
	found := false
	for _, o := range outcomes {
		if !o.reachable {
			continue
		}
		if !found || o.cost < best.cost {
			best = o
			found = true
		}
	}

	if best.cost <= 0 {
		q.logger.Error("Quote computed a non-positive cost",
			zap.String("quote_id", quoteID),
			zap.String("city", req.City),
			zap.Int64("cost", best.cost),
		)
		return unavailable(quoteID, ReasonUnavailable)
	}

	return &Result{
		QuoteID:        quoteID,
		CostMinorUnits: best.cost,
		DistanceKm:     Round2(best.distanceKm),
	}
}

func unavailable(quoteID, reason string) *Result {
	return &Result{QuoteID: quoteID, Unavailable: true, Reason: reason}
}
