package api

import (
	"context"
	"net/http"

	"github.com/okian/wagegap/internal/domain/model"
)

// DataDependencies exposes the raw dataset views.
type DataDependencies interface {
	Countries(ctx context.Context) []model.CountryRef
	Historical(ctx context.Context) []model.Observation
}

// DataHandler serves the country list and the historical observations.
type DataHandler struct {
	deps DataDependencies
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps DataDependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

// HandleCountries handles GET /api/countries.
func (h *DataHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	countries := h.deps.Countries(r.Context())
	if countries == nil {
		countries = []model.CountryRef{}
	}
	writeJSON(w, http.StatusOK, countries)
}

// HandleHistorical handles GET /api/historical-data.
func (h *DataHandler) HandleHistorical(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	rows := h.deps.Historical(r.Context())
	if rows == nil {
		rows = []model.Observation{}
	}
	writeJSON(w, http.StatusOK, rows)
}
