package schema

import "sort"

// SkippedVariable records a configured variable the loader could not prepare,
// typically because a row's unit had no conversion rule. The report keeps
// going without it.
type SkippedVariable struct {
	Variable string `json:"variable"`
	Reason   string `json:"reason"`
}

// Ensemble is the fully loaded input for one report: one series table per
// configured variable plus the joined metadata table. All filtering, renaming
// and unit conversion has already happened by the time an Ensemble exists.
type Ensemble struct {
	DatasetPath  string
	MetadataPath string
	Tables       []*SeriesTable // config order
	Metadata     *Metadata
	Skipped      []SkippedVariable
}

// Table returns the series table for a canonical variable name.
func (e *Ensemble) Table(variable string) (*SeriesTable, bool) {
	for _, t := range e.Tables {
		if t.Variable == variable {
			return t, true
		}
	}
	return nil, false
}

// Scenarios returns the union of scenario keys across all tables in
// deterministic order.
func (e *Ensemble) Scenarios() []ScenarioKey {
	seen := make(map[ScenarioKey]struct{})
	for _, t := range e.Tables {
		for k := range t.Rows {
			seen[k] = struct{}{}
		}
	}
	keys := make([]ScenarioKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
