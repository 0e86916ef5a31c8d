// Package dataset reads the wage-gap observations from disk into an immutable table.
//
// Load never fails outright: a missing or malformed file yields a Result carrying the
// wrapped error together with the fallback table chosen by the configured policy.
package dataset

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/series"

	"github.com/okian/wagegap/internal/domain/country"
	"github.com/okian/wagegap/internal/domain/model"
	"github.com/okian/wagegap/pkg/logger"
)

// Source tells where the table in a Result came from.
type Source string

const (
	SourceFile   Source = "file"
	SourceSample Source = "sample"
	SourceEmpty  Source = "empty"
)

// Years outside this range are treated as unparseable.
const (
	minYear = 1
	maxYear = 9999
)

// Result is the outcome of one load attempt.
type Result struct {
	Table   *model.Table
	Source  Source
	Path    string
	Dropped int
	Err     error
}

// Fallback reports whether the table is a fallback rather than the file contents.
func (r Result) Fallback() bool { return r.Source != SourceFile }

// Loader reads a CSV or XLSX dataset.
type Loader struct {
	path       string
	sheet      string
	countryCol string
	yearCol    string
	valueCol   string
	fallback   FallbackPolicy
	log        logger.Logger
}

// NewLoader creates a Loader for path.
func NewLoader(path string, opts ...Option) *Loader {
	l := &Loader{
		path:     path,
		fallback: FallbackSample,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the dataset location.
func (l *Loader) Path() string { return l.path }

// Policy returns the active fallback policy.
func (l *Loader) Policy() FallbackPolicy { return l.fallback }

// Load reads the dataset. On failure Result.Err is set and Result.Table holds the fallback.
func (l *Loader) Load(ctx context.Context) Result {
	start := time.Now()
	tbl, dropped, err := l.read(ctx)
	if err == nil {
		l.log.Info(ctx, "dataset loaded",
			logger.String("path", l.path),
			logger.Int("rows", tbl.Len()),
			logger.Int("countries", len(tbl.Codes())),
			logger.Int("dropped", dropped),
			logger.Duration("took", time.Since(start)))
		return Result{Table: tbl, Source: SourceFile, Path: l.path, Dropped: dropped}
	}

	res := Result{Path: l.path, Err: err}
	switch l.fallback {
	case FallbackEmpty:
		res.Table, res.Source = model.NewTable(nil), SourceEmpty
	default:
		res.Table, res.Source = Sample(), SourceSample
	}
	l.log.Warn(ctx, "dataset load failed, serving fallback",
		logger.String("path", l.path),
		logger.String("fallback", string(res.Source)),
		logger.Error(err))
	return res
}

func (l *Loader) read(ctx context.Context) (*model.Table, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if _, err := os.Stat(l.path); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	df, err := readFrame(l.path, l.sheet)
	if err != nil {
		return nil, 0, err
	}

	names := df.Names()
	countryCol, ok := resolveColumn(names, l.countryCol, countryAliases)
	if !ok {
		return nil, 0, fmt.Errorf("%w: country (have %v)", ErrMissingColumn, names)
	}
	yearCol, ok := resolveColumn(names, l.yearCol, yearAliases)
	if !ok {
		return nil, 0, fmt.Errorf("%w: year (have %v)", ErrMissingColumn, names)
	}
	valueCol, ok := resolveColumn(names, l.valueCol, valueAliases)
	if !ok {
		return nil, 0, fmt.Errorf("%w: value (have %v)", ErrMissingColumn, names)
	}

	codes := df.Col(countryCol).Records()
	years := floats(df.Col(yearCol))
	values := floats(df.Col(valueCol))

	rows := make([]model.Observation, 0, len(codes))
	dropped := 0
	for i := range codes {
		code := strings.TrimSpace(codes[i])
		y, v := years[i], values[i]
		if code == "" || !isFinite(y) || !isFinite(v) || y != math.Trunc(y) || y < minYear || y > maxYear {
			dropped++
			continue
		}
		rows = append(rows, model.Observation{CountryCode: code, Year: int(y), WageGap: v})
	}
	if dropped > 0 {
		l.log.Debug(ctx, "dropped unparseable rows", logger.Int("dropped", dropped))
	}
	tbl := model.NewTable(rows)
	if unnamed := Unnamed(tbl); len(unnamed) > 0 {
		l.log.Debug(ctx, "codes without display names", logger.Any("codes", unnamed))
	}
	return tbl, dropped, nil
}

// Unnamed returns the codes in tbl that have no display name, such as OECD aggregates.
func Unnamed(tbl *model.Table) []string {
	var out []string
	for _, c := range tbl.Codes() {
		if !country.Known(c) {
			out = append(out, c)
		}
	}
	return out
}

// floats parses a string column as numbers, ignoring surrounding whitespace.
// Unparseable cells become NaN.
func floats(s series.Series) []float64 {
	records := s.Records()
	for i, r := range records {
		records[i] = strings.TrimSpace(r)
	}
	return series.New(records, series.Float, s.Name).Float()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
