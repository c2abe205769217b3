package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/northmart/shipquote/internal/server"
	"github.com/northmart/shipquote/pkg/quote"
	"github.com/northmart/shipquote/pkg/quote/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Built once: the metrics inside the server register against the global
// Prometheus registry.
var testHandler = newTestHandler()

func newTestHandler() http.Handler {
	logger := otelzap.New(zap.NewNop())
	store := memstore.NewSeeded()
	quoter := quote.New(store, quote.NewStaticGeocoder(), quote.Options{MaxDistanceCeilingKm: 60}, logger, nil)
	return server.New(server.Config{Port: 8080}, quoter, store, logger).Handler()
}

func postGraphQL(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	testHandler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	testHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	testHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_GraphQL_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()

	testHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_GraphQL_InvalidJSON(t *testing.T) {
	rec := postGraphQL(t, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GraphQL_InvalidDocument(t *testing.T) {
	rec := postGraphQL(t, `{"query": "query { "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GraphQL_Health(t *testing.T) {
	rec := postGraphQL(t, `{"query": "query { health }"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Health string `json:"health"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Data.Health)
}

func TestServer_GraphQL_AllowedCities(t *testing.T) {
	rec := postGraphQL(t, `{"query": "query { allowedCities { cityName province } }"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			AllowedCities []struct {
				CityName string `json:"cityName"`
			} `json:"allowedCities"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.AllowedCities)
}

func TestServer_GraphQL_ShippingQuote(t *testing.T) {
	body := `{
		"query": "mutation ($input: QuoteInput!) { shipping_quote(input: $input) { quoteId costMinorUnits unavailable } }",
		"variables": {
			"input": {
				"destination": {"city": "Toronto", "province": "ON", "country": "CA"},
				"weightGrams": 2000
			}
		}
	}`
	rec := postGraphQL(t, body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ShippingQuote struct {
				QuoteID        string `json:"quoteId"`
				CostMinorUnits *int64 `json:"costMinorUnits"`
				Unavailable    bool   `json:"unavailable"`
			} `json:"shipping_quote"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Data.ShippingQuote.Unavailable)
	require.NotNil(t, resp.Data.ShippingQuote.CostMinorUnits)
	assert.Equal(t, int64(1100), *resp.Data.ShippingQuote.CostMinorUnits)
	assert.NotEmpty(t, resp.Data.ShippingQuote.QuoteID)
}

func TestServer_GraphQL_ShippingQuote_Unavailable(t *testing.T) {
	body := `{
		"query": "mutation ($input: QuoteInput!) { shipping_quote(input: $input) { unavailable reason } }",
		"variables": {
			"input": {
				"destination": {"city": "Vancouver", "province": "BC", "country": "CA"}
			}
		}
	}`
	rec := postGraphQL(t, body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ShippingQuote struct {
				Unavailable bool    `json:"unavailable"`
				Reason      *string `json:"reason"`
			} `json:"shipping_quote"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.ShippingQuote.Unavailable)
	require.NotNil(t, resp.Data.ShippingQuote.Reason)
}

func TestServer_GraphQL_ShippingQuote_MissingInput(t *testing.T) {
	body := `{"query": "mutation { shipping_quote { quoteId } }"}`
	rec := postGraphQL(t, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GraphQL_ShippingQuote_InvalidDestination(t *testing.T) {
	body := `{
		"query": "mutation ($input: QuoteInput!) { shipping_quote(input: $input) { quoteId } }",
		"variables": {
			"input": {
				"destination": {"city": "", "province": "ON", "country": "CA"}
			}
		}
	}`
	rec := postGraphQL(t, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GraphQL_UnknownOperation(t *testing.T) {
	rec := postGraphQL(t, `{"query": "query { bogusField }"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
