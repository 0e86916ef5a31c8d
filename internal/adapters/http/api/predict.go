package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/wagegap/internal/domain/analytics"
)

const msgInsufficientData = "Insufficient data for prediction"

// PredictDependencies exposes trend projection.
type PredictDependencies interface {
	// Predict projects code's gap. horizon 0 selects the default length.
	Predict(ctx context.Context, code string, horizon int) (analytics.Projection, error)
	MaxHorizon() int
}

// PredictHandler handles projection requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandlePredict handles GET /api/predict/{code}[?years=N].
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	code, ok := pathCode(r.URL.Path, "/api/predict/")
	if !ok {
		writeError(w, http.StatusBadRequest, "missing country code")
		return
	}
	horizon, err := h.parseYears(r.URL.Query().Get("years"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.deps.Predict(r.Context(), code, horizon)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, p)
	case errors.Is(err, analytics.ErrNotFound):
		writeError(w, http.StatusNotFound, msgCountryNotFound)
	case errors.Is(err, analytics.ErrInsufficientData):
		writeError(w, http.StatusNotFound, msgInsufficientData)
	case errors.Is(err, analytics.ErrInvalidHorizon):
		writeError(w, http.StatusBadRequest, h.yearsMessage())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *PredictHandler) parseYears(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > h.deps.MaxHorizon() {
		return 0, fmt.Errorf("%w: %s", ErrBadRequest, h.yearsMessage())
	}
	return n, nil
}

func (h *PredictHandler) yearsMessage() string {
	return fmt.Sprintf("years must be an integer between 1 and %d", h.deps.MaxHorizon())
}
