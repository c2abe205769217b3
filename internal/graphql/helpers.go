package graphql

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/northmart/shipquote/pkg/quote"
)

var validate = validator.New()

func validateQuoteInput(input QuoteInput) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", quote.ErrInvalidRequest, err)
	}
	return nil
}

func quoteInputToRequest(input QuoteInput) quote.Request {
	req := quote.Request{
		City:     input.Destination.City,
		Province: input.Destination.Province,
		Country:  input.Destination.Country,
	}
	if input.Destination.PostalCode != nil {
		req.PostalCode = *input.Destination.PostalCode
	}
	if input.WeightGrams != nil {
		req.WeightGrams = *input.WeightGrams
	}
	return req
}

func resultToGraphQL(result *quote.Result) *QuoteResult {
	out := &QuoteResult{
		QuoteID:     result.QuoteID,
		Unavailable: result.Unavailable,
	}
	if result.Unavailable {
		reason := result.Reason
		out.Reason = &reason
		return out
	}

	cost := result.CostMinorUnits
	out.CostMinorUnits = &cost
	if result.DistanceKm > 0 {
		dist := result.DistanceKm
		out.DistanceKm = &dist
	}
	return out
}

func citiesToGraphQL(cities []quote.AllowedCity) []*AllowedCity {
	result := make([]*AllowedCity, len(cities))
	for i, c := range cities {
		result[i] = &AllowedCity{
			CityName: c.CityName,
			Province: c.Province,
		}
	}
	return result
}
