package quote

import (
	"math"
)

// SelectRate picks the applicable rate tier for a distance, in priority
// order:
//
//  1. first active rate in zoneID whose [MinDistance, MaxDistance]
//     contains distanceKm (bounds inclusive),
//  2. first active rate in any zone containing distanceKm,
//  3. the active rate with the largest MaxDistance, as a catch-all
//     ceiling.
//
// A nil result means no pricing is configured at all, which the caller
// must treat as a configuration problem rather than "unreachable".
// zoneID of 0 skips the zone-scoped pass. zoneRates and allRates may
// overlap; both are filtered to active entries.
func SelectRate(zoneID int64, distanceKm float64, zoneRates, allRates []ShippingRate) *ShippingRate {
	if zoneID != 0 {
		for i := range zoneRates {
			r := &zoneRates[i]
			if r.IsActive && r.ZoneID == zoneID && rangeContains(r, distanceKm) {
				return r
			}
		}
	}

	for i := range allRates {
		r := &allRates[i]
		if r.IsActive && rangeContains(r, distanceKm) {
			return r
		}
	}

	var widest *ShippingRate
	for i := range allRates {
		r := &allRates[i]
		if !r.IsActive {
			continue
		}
		if widest == nil || r.MaxDistance > widest.MaxDistance {
			widest = r
		}
	}
	return widest
}

func rangeContains(r *ShippingRate, distanceKm float64) bool {
	return distanceKm >= r.MinDistance && distanceKm <= r.MaxDistance
}

// ComputeCost prices a rate for the given distance and optional weight.
// Each additive term is rounded half-up independently before summing;
// the final sum is not rounded again. Keeping the per-term rounding is
// required for numeric reproducibility against the stored rate tables.
func ComputeCost(rate *ShippingRate, distanceKm float64, weightGrams int64) int64 {
	cost := rate.BaseRate

	extraDistance := distanceKm - rate.MinDistance
	if extraDistance < 0 {
		extraDistance = 0
	}
	cost += int64(math.Round(extraDistance * float64(rate.AdditionalRatePerKm)))

	if weightGrams > 0 && rate.AdditionalRatePerKg > 0 {
		kg := float64(weightGrams) / 1000.0
		cost += int64(math.Round(kg * float64(rate.AdditionalRatePerKg)))
	}

	return cost
}
