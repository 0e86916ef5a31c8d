package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/wagegap/internal/config"
	"github.com/okian/wagegap/pkg/logger"
)

type globalFlags struct {
	configFile string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "wagegap",
		Short:         "Gender wage gap analytics API",
		Long:          "Serves OECD gender wage gap observations, per-country trends and cross-country rankings.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			if flags.configFile != "" {
				// config.Load reads the file path from the environment.
				if err := os.Setenv("WAGEGAP_CONFIG", flags.configFile); err != nil {
					return fmt.Errorf("set config path: %w", err)
				}
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "YAML config file (overrides WAGEGAP_CONFIG)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newServeCmd(flags),
		newReportCmd(flags),
		newProbeCmd(),
	)
	return root
}

// loadConfig loads configuration and applies the logging flags on top.
func loadConfig(ctx context.Context, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}
	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("log format: %w", err)
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}
