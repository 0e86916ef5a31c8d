package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/wagegap/internal/domain/analytics"
	"github.com/okian/wagegap/internal/domain/model"
	"github.com/okian/wagegap/pkg/logger"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

type reportFlags struct {
	format string
	years  int
}

// reportEnv is the loaded table plus the engine configured from config.
type reportEnv struct {
	table  *model.Table
	engine *analytics.Engine
	out    io.Writer
	format string
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	rf := &reportFlags{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute analytics offline from the configured dataset",
	}
	cmd.PersistentFlags().StringVarP(&rf.format, "output", "o", formatJSON, "output format: json or table")

	run := func(fn func(ctx context.Context, env *reportEnv, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if rf.format != formatJSON && rf.format != formatTable {
				return fmt.Errorf("unknown output format %q", rf.format)
			}
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx, flags)
			if err != nil {
				return err
			}
			res := newLoader(cfg, logger.Get()).Load(ctx)
			if res.Err != nil {
				logger.Get().Warn(ctx, "dataset unavailable, using fallback",
					logger.String("source", string(res.Source)), logger.Error(res.Err))
			}
			return fn(ctx, &reportEnv{
				table:  res.Table,
				engine: newEngine(cfg),
				out:    cmd.OutOrStdout(),
				format: rf.format,
			}, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "countries",
			Short: "List countries in the dataset",
			Args:  cobra.NoArgs,
			RunE:  run(reportCountries),
		},
		&cobra.Command{
			Use:   "country CODE",
			Short: "Summarize one country",
			Args:  cobra.ExactArgs(1),
			RunE:  run(reportCountry),
		},
		newReportPredictCmd(rf, run),
		&cobra.Command{
			Use:   "policy",
			Short: "Rank countries by how fast their gap is closing",
			Args:  cobra.NoArgs,
			RunE:  run(reportPolicy),
		},
		&cobra.Command{
			Use:   "economic",
			Short: "Latest-year averages and illustrative economic figures",
			Args:  cobra.NoArgs,
			RunE:  run(reportEconomic),
		},
	)
	return cmd
}

func newReportPredictCmd(rf *reportFlags, run func(func(context.Context, *reportEnv, []string) error) func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict CODE",
		Short: "Project one country's gap",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, env *reportEnv, args []string) error {
			p, err := env.engine.Predict(ctx, env.table, args[0], rf.years)
			if err != nil {
				return err
			}
			if env.format == formatJSON {
				return writeJSON(env.out, p)
			}
			pr := message.NewPrinter(language.English)
			parity := "none"
			if p.ParityYear != nil {
				parity = pr.Sprintf("%d", *p.ParityYear)
			}
			pr.Fprintf(env.out, "%s (%s): %.1f%% in %d, trend %+.2f/yr, parity %s\n",
				p.Name, p.Code, p.LatestGap, p.LatestYear, p.CurrentTrend, parity)
			table := newTable(env.out, "Year", "Gap")
			for _, pt := range p.Predictions {
				table.Append([]string{strconv.Itoa(pt.Year), fmt.Sprintf("%.2f", pt.Gap)})
			}
			table.Render()
			return nil
		}),
	}
	cmd.Flags().IntVar(&rf.years, "years", 0, "projection length (0 uses prediction_horizon)")
	return cmd
}

func reportCountries(_ context.Context, env *reportEnv, _ []string) error {
	countries := env.table.Countries()
	if env.format == formatJSON {
		return writeJSON(env.out, countries)
	}
	table := newTable(env.out, "Code", "Name")
	for _, c := range countries {
		table.Append([]string{c.Code, c.Name})
	}
	table.Render()
	return nil
}

func reportCountry(ctx context.Context, env *reportEnv, args []string) error {
	d, err := env.engine.CountryDetail(ctx, env.table, args[0])
	if err != nil {
		return err
	}
	if env.format == formatJSON {
		return writeJSON(env.out, d)
	}
	pr := message.NewPrinter(language.English)
	pr.Fprintf(env.out, "%s (%s): %.1f%% in %d, change %+.2f/yr over %d observations\n",
		d.Name, d.Code, d.CurrentGap, d.LatestYear, d.AnnualChange, len(d.Data))
	table := newTable(env.out, "Year", "Gap")
	for _, o := range d.Data {
		table.Append([]string{strconv.Itoa(o.Year), fmt.Sprintf("%.1f", o.WageGap)})
	}
	table.Render()
	return nil
}

func reportPolicy(ctx context.Context, env *reportEnv, _ []string) error {
	s, err := env.engine.PolicySummary(ctx, env.table)
	if err != nil {
		return err
	}
	if env.format == formatJSON {
		return writeJSON(env.out, s)
	}
	pr := message.NewPrinter(language.English)
	pr.Fprintf(env.out, "%d qualifying countries, average change %.2f points/yr\n",
		s.QualifyingCountries, s.AverageAnnualRate)
	table := newTable(env.out, "Rank", "Code", "Name", "Reduction/yr", "Gap", "N")
	for i, p := range s.TopPerformers {
		table.Append([]string{
			strconv.Itoa(i + 1),
			p.Code,
			p.Name,
			fmt.Sprintf("%.2f", p.AnnualReduction),
			fmt.Sprintf("%.1f", p.CurrentGap),
			strconv.Itoa(p.Observations),
		})
	}
	table.Render()
	pr.Fprintf(env.out, "best practices: %s (%.2f points/yr)\n",
		strings.Join(s.BestPractices.Countries, ", "), s.BestPractices.AverageReduction)
	return nil
}

func reportEconomic(ctx context.Context, env *reportEnv, _ []string) error {
	s, err := env.engine.EconomicSummary(ctx, env.table)
	if err != nil {
		return err
	}
	if env.format == formatJSON {
		return writeJSON(env.out, s)
	}
	g := s.GlobalStats
	pr := message.NewPrinter(language.English)
	pr.Fprintf(env.out, "average gap %.1f%% in %d (improved %.2f points since %d)\n",
		g.AverageGap, g.LatestYear, g.AverageImprovement, g.EarliestYear)
	pr.Fprintf(env.out, "potential GDP increase %.2f%%, estimated gain $%.2f trillion\n",
		g.PotentialGDPIncrease, g.EstimatedGainTrillions)

	regions := make([]string, 0, len(s.RegionalGaps))
	for name := range s.RegionalGaps {
		regions = append(regions, name)
	}
	sort.Strings(regions)
	table := newTable(env.out, "Region", "Gap")
	for _, name := range regions {
		table.Append([]string{name, fmt.Sprintf("%.1f", s.RegionalGaps[name])})
	}
	table.Render()
	return nil
}

// newTable returns a bordered table writer with the given header.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
