package quote

import (
	"strings"
)

// Gate decides whether a named city is permitted for delivery, matching
// free-text input against the admin-managed allow-list.
//
// Checkout forms deliver city names with inconsistent casing, spacing and
// abbreviation, so after an exact match fails the gate falls back to
// substring containment in either direction. That tolerance can produce
// false positives ("York" matches "New York"); the behavior is deliberate
// and kept as-is.
type Gate struct {
	cities []AllowedCity
}

// NewGate creates a gate over the given allow-list snapshot. Inactive
// entries are ignored.
func NewGate(cities []AllowedCity) *Gate {
	active := make([]AllowedCity, 0, len(cities))
	for _, c := range cities {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return &Gate{cities: active}
}

// IsAllowed reports whether cityName is on the allow-list, exactly or by
// substring fuzz.
func (g *Gate) IsAllowed(cityName string) bool {
	input := normalizeCity(cityName)
	if input == "" {
		return false
	}

	for _, c := range g.cities {
		if normalizeCity(c.CityName) == input {
			return true
		}
	}

	for _, c := range g.cities {
		name := normalizeCity(c.CityName)
		if strings.Contains(input, name) || strings.Contains(name, input) {
			return true
		}
	}

	return false
}

func normalizeCity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
