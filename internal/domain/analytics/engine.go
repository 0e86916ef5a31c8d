// Package analytics answers the read-only wage-gap queries over a snapshot table.
//
// The Engine holds no data. Every method takes the table to query, so callers can
// pass whichever immutable snapshot is current.
package analytics

import (
	"context"
	"errors"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/wagegap/internal/domain/country"
	"github.com/okian/wagegap/internal/domain/model"
	"github.com/okian/wagegap/internal/domain/trend"
	"github.com/okian/wagegap/pkg/metrics"
)

var tracer = otel.Tracer("github.com/okian/wagegap/internal/domain/analytics")

// Engine computes country details, projections and cross-country summaries.
type Engine struct {
	horizon        int
	maxHorizon     int
	parityCap      int
	policyMinObs   int
	topPerformers  int
	bestPractices  int
	gdpMultiplier  float64
	trillionFactor float64
	regions        []country.Region
}

// New creates an Engine with defaults overridden by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		horizon:        DefaultHorizon,
		maxHorizon:     DefaultMaxHorizon,
		parityCap:      DefaultParityYearCap,
		policyMinObs:   DefaultPolicyMinObs,
		topPerformers:  DefaultTopPerformers,
		bestPractices:  DefaultBestPracticeCount,
		gdpMultiplier:  DefaultGDPMultiplier,
		trillionFactor: DefaultTrillionFactor,
		regions:        country.Regions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Horizon returns the default projection length.
func (e *Engine) Horizon() int { return e.horizon }

// MaxHorizon returns the largest projection length accepted by Predict.
func (e *Engine) MaxHorizon() int { return e.maxHorizon }

// CountryDetail is the summary of one country's observations.
type CountryDetail struct {
	Code         string              `json:"country_code"`
	Name         string              `json:"country_name"`
	CurrentGap   float64             `json:"current_gap"`
	LatestYear   int                 `json:"latest_year"`
	AnnualChange float64             `json:"annual_change"`
	Data         []model.Observation `json:"data"`
}

// Projection is a per-country trend forecast.
type Projection struct {
	Code         string        `json:"country_code"`
	Name         string        `json:"country_name"`
	Predictions  []trend.Point `json:"predictions"`
	ParityYear   *int          `json:"parity_year"`
	CurrentTrend float64       `json:"current_trend"`
	LatestGap    float64       `json:"latest_gap"`
	LatestYear   int           `json:"latest_year"`
}

// CountryDetail filters tbl to code and summarizes it. annual_change is the fitted
// slope when at least two observations exist and 0 otherwise.
func (e *Engine) CountryDetail(ctx context.Context, tbl *model.Table, code string) (detail CountryDetail, err error) {
	done := e.observe(ctx, "country_detail", attribute.String("country", code))
	defer func() { done(err) }()

	obs := tbl.Country(code)
	latest, ok := model.Latest(obs)
	if !ok {
		return CountryDetail{}, ErrNotFound
	}
	detail = CountryDetail{
		Code:       latest.CountryCode,
		Name:       latest.CountryName,
		CurrentGap: latest.WageGap,
		LatestYear: latest.Year,
		Data:       obs,
	}
	if fit, ferr := e.fit(obs); ferr == nil {
		detail.AnnualChange = round(fit.Slope, 2)
	}
	return detail, nil
}

// Predict projects horizon years past the latest observation. A horizon of 0 uses the
// engine default.
func (e *Engine) Predict(ctx context.Context, tbl *model.Table, code string, horizon int) (p Projection, err error) {
	done := e.observe(ctx, "predict", attribute.String("country", code), attribute.Int("horizon", horizon))
	defer func() { done(err) }()

	if horizon == 0 {
		horizon = e.horizon
	}
	if horizon < 1 || horizon > e.maxHorizon {
		return Projection{}, ErrInvalidHorizon
	}
	obs := tbl.Country(code)
	latest, ok := model.Latest(obs)
	if !ok {
		return Projection{}, ErrNotFound
	}
	fit, err := e.fit(obs)
	if err != nil {
		return Projection{}, err
	}

	points := fit.Project(latest.Year, horizon)
	for i := range points {
		points[i].Gap = round(points[i].Gap, 2)
	}
	p = Projection{
		Code:         latest.CountryCode,
		Name:         latest.CountryName,
		Predictions:  points,
		CurrentTrend: round(fit.Slope, 2),
		LatestGap:    latest.WageGap,
		LatestYear:   latest.Year,
	}
	if year, ok := fit.ParityYear(latest.Year, e.parityCap); ok {
		p.ParityYear = &year
	}
	return p, nil
}

func (e *Engine) fit(obs []model.Observation) (trend.Fit, error) {
	fit, err := trend.FitLine(obs)
	if err == nil {
		metrics.RecordRegressionFit()
	}
	return fit, err
}

// observe opens a span and returns a completion func that records the outcome.
func (e *Engine) observe(ctx context.Context, op string, attrs ...attribute.KeyValue) func(error) {
	start := time.Now()
	_, span := tracer.Start(ctx, "analytics."+op, trace.WithAttributes(attrs...))
	return func(err error) {
		result := "ok"
		switch {
		case err == nil:
		case errors.Is(err, ErrNotFound):
			result = "not_found"
		case errors.Is(err, ErrInsufficientData):
			result = "insufficient_data"
		case errors.Is(err, ErrNoData):
			result = "no_data"
		default:
			result = "error"
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, result)
		}
		span.SetAttributes(attribute.String("result", result))
		span.End()
		metrics.RecordQuery(op, result, float64(time.Since(start).Nanoseconds())/1e6)
	}
}

// round rounds half away from zero to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(v*p) / p
	if r == 0 {
		// Drop the sign so JSON never shows -0.
		return 0
	}
	return r
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return stat.Mean(vs, nil)
}
