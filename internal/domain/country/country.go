// Package country holds the static reference data used to label and group observations.
package country

import "strings"

// names maps OECD ISO-3 codes to display names.
var names = map[string]string{
	"AUS": "Australia",
	"AUT": "Austria",
	"BEL": "Belgium",
	"CAN": "Canada",
	"CHE": "Switzerland",
	"CHL": "Chile",
	"COL": "Colombia",
	"CRI": "Costa Rica",
	"CZE": "Czech Republic",
	"DEU": "Germany",
	"DNK": "Denmark",
	"ESP": "Spain",
	"EST": "Estonia",
	"FIN": "Finland",
	"FRA": "France",
	"GBR": "United Kingdom",
	"GRC": "Greece",
	"HUN": "Hungary",
	"IRL": "Ireland",
	"ISL": "Iceland",
	"ISR": "Israel",
	"ITA": "Italy",
	"JPN": "Japan",
	"KOR": "Korea",
	"LTU": "Lithuania",
	"LUX": "Luxembourg",
	"LVA": "Latvia",
	"MEX": "Mexico",
	"NLD": "Netherlands",
	"NOR": "Norway",
	"NZL": "New Zealand",
	"POL": "Poland",
	"PRT": "Portugal",
	"SVK": "Slovak Republic",
	"SVN": "Slovenia",
	"SWE": "Sweden",
	"TUR": "Türkiye",
	"USA": "United States",
}

// Region is a named group of country codes.
type Region struct {
	Name  string
	Codes []string
}

// regions is the fixed grouping used by the economic summary. Order is stable.
var regions = []Region{
	{Name: "North America", Codes: []string{"USA", "CAN"}},
	{Name: "Europe", Codes: []string{
		"AUT", "BEL", "CHE", "CZE", "DEU", "DNK", "ESP", "EST", "FIN", "FRA", "GBR", "GRC",
		"HUN", "IRL", "ISL", "ITA", "LTU", "LUX", "LVA", "NLD", "NOR", "POL", "PRT", "SVK",
		"SVN", "SWE",
	}},
	{Name: "Asia Pacific", Codes: []string{"AUS", "JPN", "KOR", "NZL"}},
	{Name: "Latin America", Codes: []string{"CHL", "COL", "CRI", "MEX"}},
}

// Normalize canonicalizes a country code for lookups.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Name returns the display name for code, or the code itself when unmapped.
func Name(code string) string {
	if n, ok := names[Normalize(code)]; ok {
		return n
	}
	return code
}

// Known reports whether code is in the static table.
func Known(code string) bool {
	_, ok := names[Normalize(code)]
	return ok
}

// Regions returns a copy of the fixed region table.
func Regions() []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		out[i] = Region{Name: r.Name, Codes: append([]string(nil), r.Codes...)}
	}
	return out
}
