// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/netip"

	"github.com/okian/wagegap/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DataDependencies
	CountryDependencies
	PredictDependencies
	ImpactDependencies
	StatusDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	dataHandler    *DataHandler
	countryHandler *CountryHandler
	predictHandler *PredictHandler
	impactHandler  *ImpactHandler
	statusHandler  *StatusHandler
	middlewares    []Middleware
	allowedOrigins []string
	rateLimitRPS   float64
	rateLimitBurst int
	trustedProxies []netip.Prefix
	log            logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		dataHandler:    NewDataHandler(deps),
		countryHandler: NewCountryHandler(deps),
		predictHandler: NewPredictHandler(deps),
		impactHandler:  NewImpactHandler(deps),
		statusHandler:  NewStatusHandler(deps),
		allowedOrigins: []string{"*"},
		rateLimitBurst: defaultRateLimitBurst,
		log:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Operational endpoints
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", MetricsHandler())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	// Business API
	mux.HandleFunc("/api/countries", MetricsMiddleware(s.dataHandler.HandleCountries, "countries"))
	mux.HandleFunc("/api/historical-data", MetricsMiddleware(s.dataHandler.HandleHistorical, "historical_data"))
	mux.HandleFunc("/api/country-data/", MetricsMiddleware(s.countryHandler.HandleGetCountry, "country_data"))
	mux.HandleFunc("/api/predict/", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("/api/policy-impact", MetricsMiddleware(s.impactHandler.HandlePolicy, "policy_impact"))
	mux.HandleFunc("/api/economic-impact", MetricsMiddleware(s.impactHandler.HandleEconomic, "economic_impact"))
	mux.HandleFunc("/api/test", MetricsMiddleware(s.statusHandler.HandleTest, "test"))
}

// Wrap applies the cross-cutting middleware chain to h.
// Order, outermost first: request id, logging, CORS, rate limit.
func (s *Server) Wrap(h http.Handler) http.Handler {
	mws := []Middleware{
		RequestIDMiddleware,
		LoggingMiddleware(s.log),
		CORSMiddleware(s.allowedOrigins),
	}
	if s.rateLimitRPS > 0 {
		mws = append(mws, RateLimitMiddleware(s.rateLimitRPS, s.rateLimitBurst, s.trustedProxies))
	}
	mws = append(mws, s.middlewares...)
	return Chain(h, mws...)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// allowGet answers non-GET requests with 405 and reports whether to continue.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD, OPTIONS")
	writeError(w, http.StatusMethodNotAllowed, ErrMethodNotAllowed.Error())
	return false
}
