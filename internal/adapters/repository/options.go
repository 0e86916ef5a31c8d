package repository

import "time"

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithClock overrides the time source used for LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(s *SnapshotStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetricsPublishing toggles dataset gauge updates on every swap.
func WithMetricsPublishing(enabled bool) Option {
	return func(s *SnapshotStore) {
		s.publishMetrics = enabled
	}
}
