package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/wagegap/internal/domain/analytics"
)

const msgCountryNotFound = "Country not found"

// CountryDependencies exposes the per-country summary.
type CountryDependencies interface {
	CountryDetail(ctx context.Context, code string) (analytics.CountryDetail, error)
}

// CountryHandler handles country detail requests.
type CountryHandler struct {
	deps CountryDependencies
}

// NewCountryHandler creates a new country handler.
func NewCountryHandler(deps CountryDependencies) *CountryHandler {
	return &CountryHandler{deps: deps}
}

// HandleGetCountry handles GET /api/country-data/{code}.
func (h *CountryHandler) HandleGetCountry(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	code, ok := pathCode(r.URL.Path, "/api/country-data/")
	if !ok {
		writeError(w, http.StatusBadRequest, "missing country code")
		return
	}

	detail, err := h.deps.CountryDetail(r.Context(), code)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, detail)
	case errors.Is(err, analytics.ErrNotFound):
		writeError(w, http.StatusNotFound, msgCountryNotFound)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// pathCode extracts the single path segment after prefix.
func pathCode(path, prefix string) (string, bool) {
	code := strings.TrimSpace(strings.TrimPrefix(path, prefix))
	if code == "" || strings.Contains(code, "/") {
		return "", false
	}
	return code, true
}
