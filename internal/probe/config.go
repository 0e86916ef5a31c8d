// Package probe verifies a running wage gap API end to end.
package probe

import (
	"errors"
	"time"
)

// Defaults for a probe run.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultWorkers = 8
	DefaultTimeout = 10 * time.Second
)

// Sentinel errors.
var (
	ErrUnhealthy    = errors.New("service unhealthy")
	ErrVerification = errors.New("verification failed")
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	Workers int           // Concurrent country checks
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every check
}

func (c *Config) normalize() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Failure is one failed check.
type Failure struct {
	Check   string `json:"check"`
	Country string `json:"country,omitempty"`
	Message string `json:"message"`
}

// Report summarizes a probe run.
type Report struct {
	Countries int           `json:"countries"`
	Checks    int           `json:"checks"`
	Failures  []Failure     `json:"failures"`
	Projected int           `json:"projected"`
	Skipped   int           `json:"skipped"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// OK reports whether every check passed.
func (r *Report) OK() bool { return len(r.Failures) == 0 }
