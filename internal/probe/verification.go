package probe

import (
	"fmt"
	"strings"

	"github.com/okian/wagegap/internal/domain/analytics"
	"github.com/okian/wagegap/internal/domain/model"
)

// verifyCountryList checks the list is sorted by code without duplicates.
func verifyCountryList(countries []model.CountryRef) string {
	for i := 1; i < len(countries); i++ {
		if countries[i].Code <= countries[i-1].Code {
			return fmt.Sprintf("country list not sorted or duplicated at %d: %s after %s",
				i, countries[i].Code, countries[i-1].Code)
		}
	}
	return ""
}

// verifyDetail checks a country summary against its own observations.
func verifyDetail(c model.CountryRef, d analytics.CountryDetail) string {
	if !strings.EqualFold(d.Code, c.Code) {
		return fmt.Sprintf("detail code %q does not match %q", d.Code, c.Code)
	}
	if len(d.Data) == 0 {
		return "detail has no observations"
	}
	latest, _ := model.Latest(d.Data)
	if d.LatestYear != latest.Year {
		return fmt.Sprintf("latest year %d does not match observations (%d)", d.LatestYear, latest.Year)
	}
	if d.CurrentGap != latest.WageGap {
		return fmt.Sprintf("current gap %.2f does not match latest observation (%.2f)", d.CurrentGap, latest.WageGap)
	}
	if len(d.Data) < 2 && d.AnnualChange != 0 {
		return fmt.Sprintf("annual change %.2f reported for a single observation", d.AnnualChange)
	}
	return ""
}

// verifyProjection checks the year sequence, the zero floor and the parity year.
func verifyProjection(code string, p analytics.Projection) string {
	if !strings.EqualFold(p.Code, code) {
		return fmt.Sprintf("projection code %q does not match %q", p.Code, code)
	}
	if len(p.Predictions) == 0 {
		return "projection is empty"
	}
	for i, pt := range p.Predictions {
		if want := p.LatestYear + 1 + i; pt.Year != want {
			return fmt.Sprintf("prediction %d has year %d, want %d", i, pt.Year, want)
		}
		if pt.Gap < 0 {
			return fmt.Sprintf("prediction for %d is negative (%.2f)", pt.Year, pt.Gap)
		}
	}
	if p.ParityYear != nil {
		if p.CurrentTrend > 0 {
			return fmt.Sprintf("parity year %d reported for an increasing trend", *p.ParityYear)
		}
		if *p.ParityYear < p.LatestYear {
			return fmt.Sprintf("parity year %d before latest year %d", *p.ParityYear, p.LatestYear)
		}
	}
	return ""
}

// verifyPolicy checks the ranking order and its bounds.
func verifyPolicy(s analytics.PolicySummary, countries int) string {
	if s.QualifyingCountries > countries {
		return fmt.Sprintf("%d qualifying countries exceeds %d listed", s.QualifyingCountries, countries)
	}
	if len(s.TopPerformers) > s.QualifyingCountries {
		return fmt.Sprintf("%d top performers exceeds %d qualifying", len(s.TopPerformers), s.QualifyingCountries)
	}
	for i := 1; i < len(s.TopPerformers); i++ {
		if s.TopPerformers[i].Slope < s.TopPerformers[i-1].Slope {
			return fmt.Sprintf("top performers not ordered by slope at %d", i)
		}
	}
	if len(s.BestPractices.Countries) > len(s.TopPerformers) {
		return "more best-practice countries than top performers"
	}
	if s.AverageAnnualRate < 0 {
		return fmt.Sprintf("negative average annual rate %.2f", s.AverageAnnualRate)
	}
	return ""
}
