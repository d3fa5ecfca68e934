// Package schema has configs, models and shared types for all parts of gigaton.
package schema

import "sort"

// ScenarioKey identifies a scenario pathway by the model that produced it
// and the scenario name. The pair is the join key between the scenario
// dataset and the metadata table.
type ScenarioKey struct {
	Model    string `json:"model"`
	Scenario string `json:"scenario"`
}

// String renders the key in "model|scenario" form for logs and warnings.
func (k ScenarioKey) String() string {
	return k.Model + "|" + k.Scenario
}

// Less orders keys by model, then by scenario name.
func (k ScenarioKey) Less(other ScenarioKey) bool {
	if k.Model != other.Model {
		return k.Model < other.Model
	}
	return k.Scenario < other.Scenario
}

// Series maps a calendar year to a numeric value for one scenario and one
// variable. The mapping is sparse: a missing year is an absent key, never a
// zero or NaN placeholder.
type Series map[int]float64

// Years returns the observed years in ascending order.
func (s Series) Years() []int {
	years := make([]int, 0, len(s))
	for year := range s {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Value returns the value observed at year. The second return reports
// whether the year is observed at all.
func (s Series) Value(year int) (float64, bool) {
	v, ok := s[year]
	return v, ok
}

// Clone returns an independent copy of the series.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	for year, v := range s {
		out[year] = v
	}
	return out
}

// SeriesTable holds one variable's time series across all scenarios.
// Invariant: every row shares the table's unit; conversion happens at load
// time, before any indicator math runs.
type SeriesTable struct {
	Variable string                 // Canonical variable name, post rename
	Unit     string                 // Common unit for every row
	Rows     map[ScenarioKey]Series // One sparse series per scenario
}

// NewSeriesTable creates an empty table for a variable and unit.
func NewSeriesTable(variable, unit string) *SeriesTable {
	return &SeriesTable{
		Variable: variable,
		Unit:     unit,
		Rows:     make(map[ScenarioKey]Series),
	}
}

// Scenarios returns the scenario keys in deterministic (model, scenario) order.
func (t *SeriesTable) Scenarios() []ScenarioKey {
	keys := make([]ScenarioKey, 0, len(t.Rows))
	for k := range t.Rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// YearColumns returns the union of observed years across all rows, ascending.
func (t *SeriesTable) YearColumns() []int {
	seen := make(map[int]struct{})
	for _, row := range t.Rows {
		for year := range row {
			seen[year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Metadata carries the per-scenario categorical attributes joined by
// (model, scenario). Category is the attribute cohort filters test against;
// any further metadata columns are kept as free-form attributes.
type Metadata struct {
	Categories map[ScenarioKey]string
	Attributes map[ScenarioKey]map[string]string
}

// NewMetadata creates an empty metadata table.
func NewMetadata() *Metadata {
	return &Metadata{
		Categories: make(map[ScenarioKey]string),
		Attributes: make(map[ScenarioKey]map[string]string),
	}
}

// Category returns the category label for a scenario. The second return
// reports whether the scenario has metadata at all.
func (m *Metadata) Category(key ScenarioKey) (string, bool) {
	c, ok := m.Categories[key]
	return c, ok
}

// Scenarios returns all scenario keys with metadata in deterministic order.
func (m *Metadata) Scenarios() []ScenarioKey {
	keys := make([]ScenarioKey, 0, len(m.Categories))
	for k := range m.Categories {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
