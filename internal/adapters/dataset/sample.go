package dataset

import "github.com/okian/wagegap/internal/domain/model"

var sampleYears = []int{2010, 2015, 2020, 2024, 2025}

// sampleGaps holds one value per sample year. Every country has enough points
// to enter the policy ranking.
var sampleGaps = []struct {
	code string
	gaps []float64
}{
	{"USA", []float64{18.9, 18.1, 17.7, 16.8, 16.5}},
	{"CAN", []float64{19.2, 18.6, 16.1, 15.9, 15.5}},
	{"MEX", []float64{16.7, 15.4, 14.1, 13.6, 13.2}},
	{"GBR", []float64{18.6, 17.1, 14.3, 13.9, 13.3}},
	{"DEU", []float64{16.7, 16.1, 14.2, 13.7, 13.5}},
	{"JPN", []float64{28.7, 25.7, 22.5, 21.3, 20.9}},
	{"KOR", []float64{36.6, 37.2, 31.1, 29.3, 28.8}},
	{"FRA", []float64{13.9, 11.6, 11.8, 11.0, 10.8}},
}

// Sample returns the built-in fallback table.
func Sample() *model.Table {
	rows := make([]model.Observation, 0, len(sampleGaps)*len(sampleYears))
	for _, c := range sampleGaps {
		for i, y := range sampleYears {
			rows = append(rows, model.Observation{CountryCode: c.code, Year: y, WageGap: c.gaps[i]})
		}
	}
	return model.NewTable(rows)
}

// SampleCodes returns the country codes embedded in the fallback table, in table order.
func SampleCodes() []string {
	out := make([]string, len(sampleGaps))
	for i, c := range sampleGaps {
		out[i] = c.code
	}
	return out
}
