package model

import (
	"sort"

	"github.com/okian/wagegap/internal/domain/country"
)

// Table is an ordered, immutable set of observations.
// All accessors are safe on a nil *Table and return copies.
type Table struct {
	rows      []Observation
	byCountry map[string][]int
	minYear   int
	maxYear   int
}

// NewTable copies rows, normalizing country codes and filling missing display names.
func NewTable(rows []Observation) *Table {
	t := &Table{
		rows:      make([]Observation, len(rows)),
		byCountry: make(map[string][]int),
	}
	for i, r := range rows {
		r.CountryCode = country.Normalize(r.CountryCode)
		if r.CountryName == "" {
			r.CountryName = country.Name(r.CountryCode)
		}
		t.rows[i] = r
		t.byCountry[r.CountryCode] = append(t.byCountry[r.CountryCode], i)
		if i == 0 || r.Year < t.minYear {
			t.minYear = r.Year
		}
		if i == 0 || r.Year > t.maxYear {
			t.maxYear = r.Year
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t.Len() == 0 }

// Rows returns every observation in input order.
func (t *Table) Rows() []Observation {
	if t == nil {
		return []Observation{}
	}
	out := make([]Observation, len(t.rows))
	copy(out, t.rows)
	return out
}

// Country returns the observations for code in input order. Lookup is case-insensitive.
func (t *Table) Country(code string) []Observation {
	if t == nil {
		return nil
	}
	idx := t.byCountry[country.Normalize(code)]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Observation, len(idx))
	for i, j := range idx {
		out[i] = t.rows[j]
	}
	return out
}

// Codes returns the distinct country codes in ascending order.
func (t *Table) Codes() []string {
	if t == nil {
		return []string{}
	}
	out := make([]string, 0, len(t.byCountry))
	for c := range t.byCountry {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Countries returns the distinct countries sorted by code.
func (t *Table) Countries() []CountryRef {
	codes := t.Codes()
	out := make([]CountryRef, 0, len(codes))
	for _, c := range codes {
		// Name comes from the first row, which NewTable has already filled.
		out = append(out, CountryRef{Code: c, Name: t.rows[t.byCountry[c][0]].CountryName})
	}
	return out
}

// YearRange returns the minimum and maximum year. ok is false for an empty table.
func (t *Table) YearRange() (minYear, maxYear int, ok bool) {
	if t.Empty() {
		return 0, 0, false
	}
	return t.minYear, t.maxYear, true
}

// AtYear returns the rows observed in year, in input order.
func (t *Table) AtYear(year int) []Observation {
	var out []Observation
	if t == nil {
		return out
	}
	for _, r := range t.rows {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}
