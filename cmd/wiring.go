package main

import (
	"github.com/okian/wagegap/internal/adapters/dataset"
	"github.com/okian/wagegap/internal/adapters/repository"
	app "github.com/okian/wagegap/internal/app"
	"github.com/okian/wagegap/internal/config"
	"github.com/okian/wagegap/internal/domain/analytics"
	"github.com/okian/wagegap/pkg/logger"
)

func newLoader(cfg *config.Config, log logger.Logger) *dataset.Loader {
	return dataset.NewLoader(cfg.DatasetPath,
		dataset.WithSheet(cfg.DatasetSheet),
		dataset.WithColumns(cfg.CountryColumn, cfg.YearColumn, cfg.ValueColumn),
		dataset.WithFallback(dataset.FallbackPolicy(cfg.FallbackPolicy)),
		dataset.WithLogger(log.Named("dataset")),
	)
}

func newEngine(cfg *config.Config) *analytics.Engine {
	return analytics.New(
		analytics.WithHorizon(cfg.PredictionHorizon, cfg.MaxPredictionHorizon),
		analytics.WithParityYearCap(cfg.ParityYearCap),
		analytics.WithPolicyRanking(cfg.PolicyMinObservations, cfg.TopPerformers, cfg.BestPracticeCount),
		analytics.WithEconomicMultipliers(cfg.GDPImpactMultiplier, cfg.TrillionGainMultiplier),
	)
}

func newService(cfg *config.Config, log logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(log.Named("service")),
		app.WithStore(repository.NewSnapshotStore(repository.WithMetricsPublishing(true))),
		app.WithLoader(newLoader(cfg, log)),
		app.WithEngine(newEngine(cfg)),
		app.WithWatch(cfg.WatchDataset, dataset.DefaultDebounce),
		app.WithReloadSchedule(cfg.ReloadSchedule),
	)
}
