package dataset

import (
	"fmt"

	"github.com/robfig/cron"
)

// Scheduler runs a job on a cron spec such as "@every 1h" or "0 0 3 * * *".
type Scheduler struct {
	spec string
	c    *cron.Cron
}

// NewScheduler validates spec and registers job. The scheduler is idle until Start.
func NewScheduler(spec string, job func()) (*Scheduler, error) {
	c := cron.New()
	if err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSchedule, spec, err)
	}
	return &Scheduler{spec: spec, c: c}, nil
}

// Spec returns the schedule expression.
func (s *Scheduler) Spec() string { return s.spec }

// Start begins running the job in its own goroutine.
func (s *Scheduler) Start() { s.c.Start() }

// Stop halts future runs. A run in progress is not interrupted.
func (s *Scheduler) Stop() { s.c.Stop() }
