package graphql

// DestinationInput is the GraphQL destination payload.
type DestinationInput struct {
	City       string  `json:"city" validate:"required"`
	Province   string  `json:"province" validate:"required"`
	Country    string  `json:"country" validate:"required"`
	PostalCode *string `json:"postalCode"`
}

// QuoteInput is the GraphQL shipping_quote mutation payload.
type QuoteInput struct {
	Destination *DestinationInput `json:"destination" validate:"required"`
	WeightGrams *int64            `json:"weightGrams" validate:"omitempty,gte=0"`
}

// QuoteResult is the GraphQL shipping_quote mutation result.
type QuoteResult struct {
	QuoteID        string   `json:"quoteId"`
	CostMinorUnits *int64   `json:"costMinorUnits,omitempty"`
	Unavailable    bool     `json:"unavailable"`
	Reason         *string  `json:"reason,omitempty"`
	DistanceKm     *float64 `json:"distanceKm,omitempty"`
}

// AllowedCity is a GraphQL allow-list entry.
type AllowedCity struct {
	CityName string `json:"cityName"`
	Province string `json:"province"`
}
