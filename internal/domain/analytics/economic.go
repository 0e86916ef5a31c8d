package analytics

import (
	"context"

	"github.com/okian/wagegap/internal/domain/model"
)

// GlobalStats are the table-wide economic figures.
type GlobalStats struct {
	AverageGap             float64 `json:"average_gap"`
	LatestYear             int     `json:"latest_year"`
	EarliestYear           int     `json:"earliest_year"`
	AverageImprovement     float64 `json:"average_improvement"`
	PotentialGDPIncrease   float64 `json:"potential_gdp_increase"`
	EstimatedGainTrillions float64 `json:"estimated_gain_trillions"`
}

// EconomicSummary is the response of the economic impact query.
type EconomicSummary struct {
	GlobalStats  GlobalStats        `json:"global_stats"`
	RegionalGaps map[string]float64 `json:"regional_gaps"`
}

// EconomicSummary computes latest-year averages, the mean improvement since the
// earliest year and the illustrative GDP figures.
func (e *Engine) EconomicSummary(ctx context.Context, tbl *model.Table) (s EconomicSummary, err error) {
	done := e.observe(ctx, "economic_summary")
	defer func() { done(err) }()

	earliest, latest, ok := tbl.YearRange()
	if !ok {
		return EconomicSummary{}, ErrNoData
	}

	latestRows := tbl.AtYear(latest)
	gaps := make([]float64, len(latestRows))
	for i, r := range latestRows {
		gaps[i] = r.WageGap
	}
	avgGap := mean(gaps)

	var improvements []float64
	for _, code := range tbl.Codes() {
		obs := tbl.Country(code)
		first, okFirst := model.LastAt(obs, earliest)
		last, okLast := model.LastAt(obs, latest)
		if !okFirst || !okLast {
			continue
		}
		if d := first.WageGap - last.WageGap; d > 0 {
			improvements = append(improvements, d)
		}
	}

	gdp := avgGap * e.gdpMultiplier
	s = EconomicSummary{
		GlobalStats: GlobalStats{
			AverageGap:             round(avgGap, 1),
			LatestYear:             latest,
			EarliestYear:           earliest,
			AverageImprovement:     round(mean(improvements), 2),
			PotentialGDPIncrease:   round(gdp, 2),
			EstimatedGainTrillions: round(gdp*e.trillionFactor, 2),
		},
		RegionalGaps: make(map[string]float64),
	}

	for _, region := range e.regions {
		var members []float64
		for _, code := range region.Codes {
			if r, ok := model.LastAt(tbl.Country(code), latest); ok {
				members = append(members, r.WageGap)
			}
		}
		if len(members) > 0 {
			s.RegionalGaps[region.Name] = round(mean(members), 1)
		}
	}
	return s, nil
}
