package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/wagegap/internal/domain/analytics"
)

// ImpactDependencies exposes the table-wide summaries.
type ImpactDependencies interface {
	PolicyImpact(ctx context.Context) (analytics.PolicySummary, error)
	EconomicImpact(ctx context.Context) (analytics.EconomicSummary, error)
}

// ImpactHandler serves the policy and economic summaries.
// Both answer {} when no data is loaded.
type ImpactHandler struct {
	deps ImpactDependencies
}

// NewImpactHandler creates a new impact handler.
func NewImpactHandler(deps ImpactDependencies) *ImpactHandler {
	return &ImpactHandler{deps: deps}
}

// HandlePolicy handles GET /api/policy-impact.
func (h *ImpactHandler) HandlePolicy(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	s, err := h.deps.PolicyImpact(r.Context())
	writeSummary(w, s, err)
}

// HandleEconomic handles GET /api/economic-impact.
func (h *ImpactHandler) HandleEconomic(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	s, err := h.deps.EconomicImpact(r.Context())
	writeSummary(w, s, err)
}

func writeSummary(w http.ResponseWriter, v any, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, v)
	case errors.Is(err, analytics.ErrNoData):
		writeJSON(w, http.StatusOK, struct{}{})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
