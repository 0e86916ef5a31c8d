package api

import (
	"net/http"

	"github.com/okian/wagegap/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles liveness checks.
type HealthHandler struct {
	deps StatusDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps StatusDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "ok", Status: h.deps.Status(r.Context())})
}

// MetricsHandler serves the Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
