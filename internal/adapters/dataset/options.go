package dataset

import (
	"github.com/okian/wagegap/pkg/logger"
)

// FallbackPolicy chooses the table served when the dataset cannot be loaded.
type FallbackPolicy string

const (
	// FallbackSample serves the built-in sample table.
	FallbackSample FallbackPolicy = "sample"
	// FallbackEmpty serves an empty table.
	FallbackEmpty FallbackPolicy = "empty"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithSheet selects the worksheet read from XLSX files. Empty means the first sheet.
func WithSheet(name string) Option {
	return func(l *Loader) {
		l.sheet = name
	}
}

// WithColumns pins the header names for country, year and value.
// Empty arguments keep alias detection for that column.
func WithColumns(countryCol, yearCol, valueCol string) Option {
	return func(l *Loader) {
		l.countryCol = countryCol
		l.yearCol = yearCol
		l.valueCol = valueCol
	}
}

// WithFallback sets the fallback policy. Unknown values are ignored.
func WithFallback(p FallbackPolicy) Option {
	return func(l *Loader) {
		switch p {
		case FallbackSample, FallbackEmpty:
			l.fallback = p
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}
