package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/northmart/shipquote/internal/graphql"
	"github.com/northmart/shipquote/internal/telemetry"
	"github.com/northmart/shipquote/pkg/quote"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.uber.org/zap"
)

// Server is the HTTP server for the shipping quote service.
type Server struct {
	port     int
	logger   *otelzap.Logger
	resolver *graphql.Resolver
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, quoter *quote.Quoter, store quote.LocationStore, logger *otelzap.Logger) *Server {
	metrics := telemetry.NewMetrics()
	resolver := graphql.NewResolver(quoter, store, logger, metrics)

	return &Server{
		port:     cfg.Port,
		logger:   logger,
		resolver: resolver,
	}
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler returns the HTTP routing mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/graphql", s.handleGraphQL)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// GraphQL request/response types
type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   interface{}    `json:"data,omitempty"`
	Errors []graphQLError `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeErrors(w, http.StatusMethodNotAllowed, "Method not allowed, use POST")
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	field, err := rootField(req.Query)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	switch field {
	case "health":
		health, _ := s.resolver.Health(ctx)
		writeData(w, map[string]interface{}{"health": health})

	case "allowedCities", "allowed_cities":
		cities, err := s.resolver.AllowedCities(ctx)
		if err != nil {
			writeErrors(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeData(w, map[string]interface{}{"allowedCities": cities})

	case "shippingQuote", "shipping_quote":
		input, err := parseQuoteInput(req.Variables)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, err.Error())
			return
		}
		result, err := s.resolver.ShippingQuote(ctx, input)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, quote.ErrInvalidRequest) {
				status = http.StatusBadRequest
			}
			writeErrors(w, status, err.Error())
			return
		}
		writeData(w, map[string]interface{}{"shipping_quote": result})

	default:
		writeErrors(w, http.StatusBadRequest, "Unknown operation: "+field)
	}
}

// rootField parses the GraphQL document and returns the name of the first
// top-level field of the first operation.
func rootField(query string) (string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return "", fmt.Errorf("invalid GraphQL document: %w", err)
	}
	if len(doc.Operations) == 0 {
		return "", fmt.Errorf("document has no operations")
	}
	for _, sel := range doc.Operations[0].SelectionSet {
		if f, ok := sel.(*ast.Field); ok {
			return f.Name, nil
		}
	}
	return "", fmt.Errorf("operation has no fields")
}

// Input parsing helpers
func parseQuoteInput(vars map[string]interface{}) (graphql.QuoteInput, error) {
	var input graphql.QuoteInput
	inputData, ok := vars["input"].(map[string]interface{})
	if !ok {
		return input, fmt.Errorf("missing or invalid 'input' variable")
	}

	if dest, ok := inputData["destination"].(map[string]interface{}); ok {
		input.Destination = parseDestinationInputPtr(dest)
	}
	if weight, ok := inputData["weightGrams"].(float64); ok {
		w := int64(weight)
		input.WeightGrams = &w
	}

	return input, nil
}

func parseDestinationInputPtr(data map[string]interface{}) *graphql.DestinationInput {
	dest := &graphql.DestinationInput{}
	dest.City, _ = data["city"].(string)
	dest.Province, _ = data["province"].(string)
	dest.Country, _ = data["country"].(string)

	if postalCode, ok := data["postalCode"].(string); ok {
		dest.PostalCode = &postalCode
	}

	return dest
}

func writeData(w http.ResponseWriter, data interface{}) {
	json.NewEncoder(w).Encode(graphQLResponse{Data: data})
}

func writeErrors(w http.ResponseWriter, status int, messages ...string) {
	w.WriteHeader(status)
	errs := make([]graphQLError, len(messages))
	for i, m := range messages {
		errs[i] = graphQLError{Message: m}
	}
	json.NewEncoder(w).Encode(graphQLResponse{Errors: errs})
}
