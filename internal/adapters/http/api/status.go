package api

import (
	"context"
	"net/http"

	"github.com/okian/wagegap/internal/domain/types"
)

// StatusDependencies exposes the served snapshot's metadata.
type StatusDependencies interface {
	Status(ctx context.Context) types.Status
}

type statusResponse struct {
	Message string `json:"status"`
	types.Status
}

// StatusHandler handles the API smoke-test endpoint.
type StatusHandler struct {
	deps StatusDependencies
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(deps StatusDependencies) *StatusHandler {
	return &StatusHandler{deps: deps}
}

// HandleTest handles GET /api/test.
func (h *StatusHandler) HandleTest(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "API is running", Status: h.deps.Status(r.Context())})
}
