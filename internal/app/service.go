// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/wagegap/internal/adapters/dataset"
	"github.com/okian/wagegap/internal/adapters/repository"
	"github.com/okian/wagegap/internal/domain/analytics"
	"github.com/okian/wagegap/internal/domain/model"
	"github.com/okian/wagegap/internal/domain/types"
	"github.com/okian/wagegap/pkg/logger"
	"github.com/okian/wagegap/pkg/metrics"
)

// Reload triggers, used as metric labels.
const (
	TriggerStartup  = "startup"
	TriggerWatch    = "watch"
	TriggerSchedule = "schedule"
	TriggerSignal   = "signal"
	TriggerManual   = "manual"
)

// Service implements the API dependencies for the wage-gap analytics.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	loader *dataset.Loader
	engine *analytics.Engine

	// Reload configuration
	watch    bool
	debounce time.Duration
	schedule string

	// Reload machinery
	reloadMu    sync.Mutex
	scheduler   *dataset.Scheduler
	stopWatch   context.CancelFunc
	watchDone   chan struct{}
	lastErr     atomic.Pointer[string]
	reloadCount atomic.Int64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLoader sets the dataset loader.
func WithLoader(l *dataset.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithEngine sets the analytics engine.
func WithEngine(e *analytics.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithStore sets the snapshot store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithWatch enables reload on dataset file changes.
func WithWatch(enabled bool, debounce time.Duration) Option {
	return func(s *Service) {
		s.watch = enabled
		s.debounce = debounce
	}
}

// WithReloadSchedule enables periodic reload on a cron spec. Empty disables it.
func WithReloadSchedule(spec string) Option {
	return func(s *Service) {
		s.schedule = spec
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		debounce: dataset.DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewSnapshotStore()
	}
	if s.engine == nil {
		s.engine = analytics.New()
	}
	return s
}

// Start loads the initial snapshot and starts the optional reload triggers.
// A dataset that cannot be read never fails Start: the loader's fallback is served.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.loader == nil {
		s.loader = dataset.NewLoader("data/oecd_wage_gap.csv", dataset.WithLogger(s.logger.Named("dataset")))
	}

	s.logger.Info(ctx, "starting wage gap service...", logger.String("dataset", s.loader.Path()))

	if _, err := s.reload(ctx, TriggerStartup, true); err != nil {
		return err
	}

	if s.schedule != "" {
		sch, err := dataset.NewScheduler(s.schedule, func() {
			_, _ = s.Reload(context.Background(), TriggerSchedule)
		})
		if err != nil {
			return err
		}
		s.scheduler = sch
		sch.Start()
		s.logger.Info(ctx, "scheduled dataset reload", logger.String("spec", s.schedule))
	}

	if s.watch {
		w, err := dataset.NewWatcher(s.loader.Path(), s.debounce, s.logger.Named("watcher"), func(ctx context.Context) {
			_, _ = s.Reload(ctx, TriggerWatch)
		})
		if err != nil {
			s.stopTriggers()
			return fmt.Errorf("watch dataset: %w", err)
		}
		wctx, cancel := context.WithCancel(context.Background())
		s.stopWatch = cancel
		s.watchDone = make(chan struct{})
		go func() {
			defer close(s.watchDone)
			_ = w.Run(wctx)
		}()
		s.logger.Info(ctx, "watching dataset for changes", logger.String("path", s.loader.Path()))
	}

	s.started = true
	snap := s.store.Current(ctx)
	s.logger.Info(ctx, "wage gap service started",
		logger.Int("rows", snap.Table.Len()),
		logger.String("source", snap.Source),
	)
	return nil
}

// Stop halts reload triggers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping wage gap service...")
	s.stopTriggers()
	s.started = false
	s.logger.Info(context.Background(), "wage gap service stopped")
}

func (s *Service) stopTriggers() {
	if s.scheduler != nil {
		s.scheduler.Stop()
		s.scheduler = nil
	}
	if s.stopWatch != nil {
		s.stopWatch()
		<-s.watchDone
		s.stopWatch = nil
	}
}

// Reload re-reads the dataset and swaps the snapshot. On failure the current
// snapshot keeps being served and the load error is returned.
func (s *Service) Reload(ctx context.Context, trigger string) (*repository.Snapshot, error) {
	return s.reload(ctx, trigger, false)
}

func (s *Service) reload(ctx context.Context, trigger string, acceptFallback bool) (*repository.Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	res := s.loader.Load(ctx)
	took := float64(time.Since(start).Nanoseconds()) / 1e6
	if res.Err != nil {
		msg := res.Err.Error()
		s.lastErr.Store(&msg)
	} else {
		s.lastErr.Store(nil)
	}
	s.reloadCount.Add(1)

	if res.Err != nil && !acceptFallback {
		metrics.RecordLoad(trigger, "failed", took, res.Dropped)
		s.logger.Warn(ctx, "dataset reload failed, keeping current snapshot",
			logger.String("trigger", trigger),
			logger.Error(res.Err),
		)
		return s.store.Current(ctx), fmt.Errorf("reload dataset: %w", res.Err)
	}

	result := "ok"
	if res.Err != nil {
		result = "fallback"
	}
	metrics.RecordLoad(trigger, result, took, res.Dropped)

	snap, err := s.store.Swap(ctx, res.Table, string(res.Source))
	if err != nil {
		return s.store.Current(ctx), fmt.Errorf("publish snapshot: %w", err)
	}
	s.logger.Info(ctx, "snapshot published",
		logger.String("trigger", trigger),
		logger.String("source", snap.Source),
		logger.Int("rows", snap.Table.Len()),
		logger.Any("version", snap.Version),
	)
	return snap, nil
}

func (s *Service) table(ctx context.Context) *model.Table {
	return s.store.Current(ctx).Table
}

// Countries returns the distinct countries sorted by code.
func (s *Service) Countries(ctx context.Context) []model.CountryRef {
	return s.table(ctx).Countries()
}

// Historical returns every observation in input order.
func (s *Service) Historical(ctx context.Context) []model.Observation {
	return s.table(ctx).Rows()
}

// CountryDetail summarizes one country.
func (s *Service) CountryDetail(ctx context.Context, code string) (analytics.CountryDetail, error) {
	return s.engine.CountryDetail(ctx, s.table(ctx), code)
}

// Predict projects a country's gap. horizon 0 means the configured default.
func (s *Service) Predict(ctx context.Context, code string, horizon int) (analytics.Projection, error) {
	return s.engine.Predict(ctx, s.table(ctx), code, horizon)
}

// PolicyImpact returns the country ranking summary.
func (s *Service) PolicyImpact(ctx context.Context) (analytics.PolicySummary, error) {
	return s.engine.PolicySummary(ctx, s.table(ctx))
}

// EconomicImpact returns the economic summary.
func (s *Service) EconomicImpact(ctx context.Context) (analytics.EconomicSummary, error) {
	return s.engine.EconomicSummary(ctx, s.table(ctx))
}

// MaxHorizon returns the largest accepted projection length.
func (s *Service) MaxHorizon() int { return s.engine.MaxHorizon() }

// Status describes the snapshot currently served.
func (s *Service) Status(ctx context.Context) types.Status {
	snap := s.store.Current(ctx)
	st := types.Status{
		DataLoaded: !snap.Table.Empty(),
		Rows:       snap.Table.Len(),
		Countries:  len(snap.Table.Codes()),
		Source:     snap.Source,
		Version:    snap.Version,
		LoadedAt:   snap.LoadedAt,
	}
	if msg := s.lastErr.Load(); msg != nil {
		st.LastError = *msg
	}
	return st
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	st := s.Status(ctx)
	stats := map[string]interface{}{
		"started":        s.started,
		"watchDataset":   s.watch,
		"reloadSchedule": s.schedule,
		"rows":           st.Rows,
		"countries":      st.Countries,
		"source":         st.Source,
		"version":        st.Version,
		"loadedAt":       st.LoadedAt,
		"loads":          s.reloadCount.Load(),
		"horizon":        s.engine.Horizon(),
		"maxHorizon":     s.engine.MaxHorizon(),
	}
	if st.LastError != "" {
		stats["lastError"] = st.LastError
	}
	if s.loader != nil {
		stats["dataset"] = s.loader.Path()
		stats["fallbackPolicy"] = string(s.loader.Policy())
	}

	return stats
}
