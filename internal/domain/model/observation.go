// Package model contains domain models passed between layers.
package model

// Observation is one country/year wage-gap measurement.
// JSON keys follow the shape the dashboard frontend consumes.
type Observation struct {
	CountryCode string  `json:"Country"`
	CountryName string  `json:"CountryName"`
	Year        int     `json:"Year"`
	WageGap     float64 `json:"WageGap"` // percent
}

// CountryRef pairs a country code with its display name.
type CountryRef struct {
	Code string `json:"Country"`
	Name string `json:"CountryName"`
}

// Latest returns the observation with the greatest year.
// When several rows share that year the last one in input order wins.
func Latest(obs []Observation) (Observation, bool) {
	if len(obs) == 0 {
		return Observation{}, false
	}
	best := obs[0]
	for _, o := range obs[1:] {
		if o.Year >= best.Year {
			best = o
		}
	}
	return best, true
}

// LastAt returns the last observation in input order whose year equals year.
func LastAt(obs []Observation, year int) (Observation, bool) {
	for i := len(obs) - 1; i >= 0; i-- {
		if obs[i].Year == year {
			return obs[i], true
		}
	}
	return Observation{}, false
}
