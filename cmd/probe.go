package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/wagegap/internal/probe"
)

func newProbeCmd() *cobra.Command {
	cfg := probe.Config{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Verify a running API end to end",
		Long: `Checks health, then fetches every country's summary and projection concurrently
and validates them together with the aggregate endpoints. Exits non-zero on any failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := probe.Run(cmd.Context(), cfg)
			if rep != nil {
				if werr := writeJSON(cmd.OutOrStdout(), rep); werr != nil {
					return werr
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", probe.DefaultBaseURL, "Base URL of the service")
	cmd.Flags().IntVar(&cfg.Workers, "workers", probe.DefaultWorkers, "Number of concurrent country checks")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", probe.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Log every check")
	return cmd
}
