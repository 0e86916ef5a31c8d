package analytics

// Default engine configuration.
const (
	DefaultHorizon           = 15
	DefaultMaxHorizon        = 50
	DefaultParityYearCap     = 2100
	DefaultPolicyMinObs      = 5
	DefaultTopPerformers     = 5
	DefaultBestPracticeCount = 3
	DefaultGDPMultiplier     = 0.15
	DefaultTrillionFactor    = 0.1
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithHorizon sets the default and maximum number of projected years.
func WithHorizon(def, maxHorizon int) Option {
	return func(e *Engine) {
		if maxHorizon > 0 {
			e.maxHorizon = maxHorizon
		}
		if def > 0 && def <= e.maxHorizon {
			e.horizon = def
		}
	}
}

// WithParityYearCap sets the last year a parity estimate may fall on.
func WithParityYearCap(year int) Option {
	return func(e *Engine) {
		if year > 0 {
			e.parityCap = year
		}
	}
}

// WithPolicyRanking configures who enters the policy ranking and how much of it is reported.
func WithPolicyRanking(minObservations, topPerformers, bestPractices int) Option {
	return func(e *Engine) {
		if minObservations >= 2 {
			e.policyMinObs = minObservations
		}
		if topPerformers > 0 {
			e.topPerformers = topPerformers
		}
		if bestPractices > 0 {
			e.bestPractices = bestPractices
		}
	}
}

// WithEconomicMultipliers sets the illustrative GDP and trillion-gain factors.
func WithEconomicMultipliers(gdp, trillion float64) Option {
	return func(e *Engine) {
		if gdp >= 0 {
			e.gdpMultiplier = gdp
		}
		if trillion >= 0 {
			e.trillionFactor = trillion
		}
	}
}
