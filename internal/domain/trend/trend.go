// Package trend fits ordinary-least-squares lines of wage gap against year.
package trend

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/wagegap/internal/domain/model"
)

// MinPoints is the smallest sample a line can be fitted to.
const MinPoints = 2

// ErrInsufficientData is returned when fewer than MinPoints observations are available.
var ErrInsufficientData = errors.New("insufficient data for trend fit")

// Fit is a fitted line gap = Slope*year + Intercept.
type Fit struct {
	Slope     float64
	Intercept float64
	N         int
}

// Point is a projected (year, gap) pair.
type Point struct {
	Year int     `json:"year"`
	Gap  float64 `json:"gap"`
}

// FitLine regresses wage gap on year.
func FitLine(obs []model.Observation) (Fit, error) {
	if len(obs) < MinPoints {
		return Fit{}, ErrInsufficientData
	}
	xs := make([]float64, len(obs))
	ys := make([]float64, len(obs))
	for i, o := range obs {
		xs[i] = float64(o.Year)
		ys[i] = o.WageGap
	}
	// All samples in one year: the slope is undefined, treat the trend as flat.
	if stat.Variance(xs, nil) == 0 {
		return Fit{Slope: 0, Intercept: stat.Mean(ys, nil), N: len(obs)}, nil
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Fit{Slope: beta, Intercept: alpha, N: len(obs)}, nil
}

// At evaluates the line at year.
func (f Fit) At(year int) float64 {
	return f.Slope*float64(year) + f.Intercept
}

// Project returns horizon consecutive years after latest, each clamped at zero.
func (f Fit) Project(latest, horizon int) []Point {
	if horizon <= 0 {
		return []Point{}
	}
	out := make([]Point, horizon)
	for i := range out {
		y := latest + 1 + i
		out[i] = Point{Year: y, Gap: math.Max(0, f.At(y))}
	}
	return out
}

// ParityYear returns the year the line crosses zero. ok is false when the slope is not
// negative or the year falls outside [latest, yearCap].
func (f Fit) ParityYear(latest, yearCap int) (year int, ok bool) {
	if f.Slope >= 0 {
		return 0, false
	}
	p := math.Round(f.Intercept / -f.Slope)
	if math.IsNaN(p) || p < float64(latest) || p > float64(yearCap) {
		return 0, false
	}
	return int(p), true
}
