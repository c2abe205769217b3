package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/northmart/shipquote/internal/telemetry"
	"github.com/northmart/shipquote/pkg/quote"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Resolver is the root resolver for the GraphQL schema.
// It holds dependencies needed by all resolvers.
type Resolver struct {
	Quoter  *quote.Quoter
	Store   quote.LocationStore
	Logger  *otelzap.Logger
	Metrics *telemetry.Metrics
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(quoter *quote.Quoter, store quote.LocationStore, logger *otelzap.Logger, metrics *telemetry.Metrics) *Resolver {
	return &Resolver{
		Quoter:  quoter,
		Store:   store,
		Logger:  logger,
		Metrics: metrics,
	}
}

// Health resolves the health query.
func (r *Resolver) Health(ctx context.Context) (string, error) {
	return "ok", nil
}

// AllowedCities resolves the delivery allow-list query.
func (r *Resolver) AllowedCities(ctx context.Context) ([]*AllowedCity, error) {
	cities, err := r.Store.ListActiveAllowedCities(ctx)
	if err != nil {
		r.Logger.Error("Failed to list allowed cities", zap.Error(err))
		return nil, err
	}
	return citiesToGraphQL(cities), nil
}

// ShippingQuote resolves the shipping_quote mutation.
func (r *Resolver) ShippingQuote(ctx context.Context, input QuoteInput) (*QuoteResult, error) {
	start := time.Now()

	if err := validateQuoteInput(input); err != nil {
		r.Metrics.RecordQuote("invalid", time.Since(start).Seconds())
		return nil, err
	}

	result, err := r.Quoter.Quote(ctx, quoteInputToRequest(input))
	if err != nil {
		outcome := "error"
		if errors.Is(err, quote.ErrInvalidRequest) {
			outcome = "invalid"
		}
		r.Metrics.RecordQuote(outcome, time.Since(start).Seconds())
		r.Logger.Error("Quote computation failed",
			zap.String("city", input.Destination.City),
			zap.Error(err),
		)
		return nil, err
	}

	outcome := "quoted"
	if result.Unavailable {
		outcome = "unavailable"
		// The generic reason is only produced for configuration defects
		// and computation anomalies; out-of-range uses its own reason.
		if result.Reason == quote.ReasonUnavailable {
			r.Metrics.RecordConfigDefect("quote_defect")
		}
	}
	r.Metrics.RecordQuote(outcome, time.Since(start).Seconds())

	return resultToGraphQL(result), nil
}
