package schema

// NetZeroResult is one scenario's interpolated threshold-crossing year.
// Year is +Inf when the series never dips below the threshold within the
// observed horizon.
type NetZeroResult struct {
	Model    string  `json:"model"`
	Scenario string  `json:"scenario"`
	Category string  `json:"category,omitempty"`
	Year     float64 `json:"-"`
	Crossed  bool    `json:"crossed"`
}

// Key returns the scenario key this result belongs to.
func (r NetZeroResult) Key() ScenarioKey {
	return ScenarioKey{Model: r.Model, Scenario: r.Scenario}
}

// ChangeResult holds one scenario's annual rates of change, one entry per
// configured year pair keyed "start-end". An absent pair means at least one
// endpoint was missing, so the rate is undefined rather than zero.
type ChangeResult struct {
	Model    string             `json:"model"`
	Scenario string             `json:"scenario"`
	Category string             `json:"category,omitempty"`
	Rates    map[string]float64 `json:"rates"`
}

// SnapshotResult holds one scenario's raw values at the reference years.
// Absent years were not observed in the input series.
type SnapshotResult struct {
	Model    string          `json:"model"`
	Scenario string          `json:"scenario"`
	Category string          `json:"category,omitempty"`
	Values   map[int]float64 `json:"values"`
}

// CohortResult describes one cohort's resolved membership.
type CohortResult struct {
	Name       string        `json:"name"`
	Categories []string      `json:"categories"`
	Count      int           `json:"count"`
	Members    []ScenarioKey `json:"members"`
}
