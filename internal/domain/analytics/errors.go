package analytics

import (
	"errors"

	"github.com/okian/wagegap/internal/domain/trend"
)

var (
	// ErrNotFound means the requested country is absent or the table is empty.
	ErrNotFound = errors.New("country not found")
	// ErrInsufficientData means the country has too few observations for a trend fit.
	ErrInsufficientData = trend.ErrInsufficientData
	// ErrNoData means an aggregate was requested over an empty table.
	ErrNoData = errors.New("no data loaded")
	// ErrInvalidHorizon means a projection horizon outside [1, max] was requested.
	ErrInvalidHorizon = errors.New("invalid prediction horizon")
)
