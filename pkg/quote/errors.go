package quote

import (
	"errors"
)

// Sentinel errors for the quoting pipeline.
var (
	// ErrInvalidRequest indicates the caller omitted required destination
	// fields. Surfaced to the caller as-is, never retried.
	ErrInvalidRequest = errors.New("invalid quote request")

	// ErrInvalidCoordinate indicates a non-finite latitude or longitude
	// reached the distance computation. A programming or data error, not
	// a business outcome.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrCityNotFound indicates the geocoder has no entry for a city.
	ErrCityNotFound = errors.New("city not found")

	// ErrNoRatesConfigured indicates no active rate exists anywhere and
	// no fallback applies. A configuration defect, not "unreachable".
	ErrNoRatesConfigured = errors.New("no shipping rates configured")
)

// Display reasons attached to Unavailable results. End users see these;
// configuration defects deliberately collapse into the generic reason so
// internal state does not leak through the checkout flow.
const (
	ReasonOutsideRange = "outside delivery range"
	ReasonUnavailable  = "shipping unavailable for this destination"
)
