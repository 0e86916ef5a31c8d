// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers .env, an optional YAML file and WAGEGAP_* env vars on top.
// - External errors are wrapped with this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// DatasetPath points at the CSV or XLSX dataset, relative to the working directory.
	DatasetPath string `koanf:"dataset_path" validate:"required"`

	// DatasetSheet selects the worksheet for XLSX input. Empty means the first sheet.
	DatasetSheet string `koanf:"dataset_sheet"`

	// Column overrides. Empty means auto-detect from known header aliases.
	CountryColumn string `koanf:"country_column"`
	YearColumn    string `koanf:"year_column"`
	ValueColumn   string `koanf:"value_column"`

	// FallbackPolicy decides what is served when the dataset cannot be loaded: sample or empty.
	FallbackPolicy string `koanf:"fallback_policy" validate:"oneof=sample empty"`

	// WatchDataset reloads the snapshot when the dataset file changes.
	WatchDataset bool `koanf:"watch_dataset"`

	// ReloadSchedule is a cron spec such as "@every 1h". Empty disables it.
	ReloadSchedule string `koanf:"reload_schedule"`

	// PredictionHorizon is the default number of projected years.
	PredictionHorizon int `koanf:"prediction_horizon" validate:"gte=1,ltefield=MaxPredictionHorizon"`

	// MaxPredictionHorizon caps ?years on /api/predict.
	MaxPredictionHorizon int `koanf:"max_prediction_horizon" validate:"gte=1"`

	// ParityYearCap is the last year a parity estimate may fall on.
	ParityYearCap int `koanf:"parity_year_cap" validate:"gte=1900"`

	// PolicyMinObservations is the sample size a country needs to enter the policy ranking.
	PolicyMinObservations int `koanf:"policy_min_observations" validate:"gte=2"`

	TopPerformers     int `koanf:"top_performers" validate:"gte=1"`
	BestPracticeCount int `koanf:"best_practice_count" validate:"gte=1"`

	// GDPImpactMultiplier and TrillionGainMultiplier are illustrative economic factors.
	GDPImpactMultiplier    float64 `koanf:"gdp_impact_multiplier" validate:"gte=0"`
	TrillionGainMultiplier float64 `koanf:"trillion_gain_multiplier" validate:"gte=0"`

	// CORSAllowedOrigins is a comma separated list, "*" allows any origin.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// RateLimitRPS enables per-process rate limiting when > 0.
	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=1"`

	// TrustedProxies lists proxy IPs or CIDRs, comma separated, whose
	// X-Forwarded-For header keys the rate limiter. Empty trusts none.
	TrustedProxies string `koanf:"trusted_proxies"`

	// TraceStdout exports spans to stdout.
	TraceStdout bool `koanf:"trace_stdout"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":5000",
		DatasetPath:            "data/oecd_wage_gap.csv",
		FallbackPolicy:         "sample",
		PredictionHorizon:      15,
		MaxPredictionHorizon:   50,
		ParityYearCap:          2100,
		PolicyMinObservations:  5,
		TopPerformers:          5,
		BestPracticeCount:      3,
		GDPImpactMultiplier:    0.15,
		TrillionGainMultiplier: 0.1,
		CORSAllowedOrigins:     "*",
		RateLimitBurst:         20,
	}
}
