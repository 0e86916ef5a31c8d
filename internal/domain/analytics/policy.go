package analytics

import (
	"context"
	"math"
	"sort"

	"github.com/okian/wagegap/internal/domain/model"
)

// Performer is one ranked country in the policy summary.
type Performer struct {
	Code            string  `json:"country_code"`
	Name            string  `json:"name"`
	AnnualReduction float64 `json:"annual_reduction"`
	Slope           float64 `json:"slope"`
	CurrentGap      float64 `json:"current_gap"`
	Observations    int     `json:"observations"`
}

// BestPractices names the leading countries and their mean rate of change.
type BestPractices struct {
	Countries        []string `json:"countries"`
	AverageReduction float64  `json:"average_reduction"`
}

// PolicySummary ranks countries by how fast their gap is closing.
type PolicySummary struct {
	TopPerformers       []Performer   `json:"top_performers"`
	AverageAnnualRate   float64       `json:"average_annual_rate"`
	QualifyingCountries int           `json:"qualifying_countries"`
	BestPractices       BestPractices `json:"best_practices"`
}

type ranked struct {
	code  string
	name  string
	slope float64
	gap   float64
	n     int
}

// PolicySummary fits every country with enough observations and ranks them by
// ascending slope, so the fastest-closing gap comes first. Ties are broken by code.
func (e *Engine) PolicySummary(ctx context.Context, tbl *model.Table) (s PolicySummary, err error) {
	done := e.observe(ctx, "policy_summary")
	defer func() { done(err) }()

	if tbl.Empty() {
		return PolicySummary{}, ErrNoData
	}

	var all []ranked
	for _, code := range tbl.Codes() {
		obs := tbl.Country(code)
		if len(obs) < e.policyMinObs {
			continue
		}
		fit, ferr := e.fit(obs)
		if ferr != nil {
			continue
		}
		latest, _ := model.Latest(obs)
		all = append(all, ranked{code: code, name: latest.CountryName, slope: fit.Slope, gap: latest.WageGap, n: len(obs)})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].slope != all[j].slope {
			return all[i].slope < all[j].slope
		}
		return all[i].code < all[j].code
	})

	slopes := make([]float64, len(all))
	for i, r := range all {
		slopes[i] = r.slope
	}

	top := all[:min(e.topPerformers, len(all))]
	s = PolicySummary{
		TopPerformers:       make([]Performer, 0, len(top)),
		AverageAnnualRate:   round(math.Abs(mean(slopes)), 2),
		QualifyingCountries: len(all),
		BestPractices:       BestPractices{Countries: []string{}},
	}
	for _, r := range top {
		s.TopPerformers = append(s.TopPerformers, Performer{
			Code:            r.code,
			Name:            r.name,
			AnnualReduction: round(math.Abs(r.slope), 2),
			Slope:           round(r.slope, 4),
			CurrentGap:      round(r.gap, 1),
			Observations:    r.n,
		})
	}

	best := all[:min(e.bestPractices, len(all))]
	abs := make([]float64, len(best))
	for i, r := range best {
		s.BestPractices.Countries = append(s.BestPractices.Countries, r.name)
		abs[i] = math.Abs(r.slope)
	}
	s.BestPractices.AverageReduction = round(mean(abs), 2)
	return s, nil
}
