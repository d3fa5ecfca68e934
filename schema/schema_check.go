package schema

// CheckViolation is a single finding from the input validation gate.
// Fatal findings fail the check; non-fatal ones are surfaced as warnings.
type CheckViolation struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
	Fatal   bool   `json:"fatal"`
}

// Violation kinds reported by the check gate.
const (
	ViolationMissingConversion = "missing-unit-conversion"
	ViolationMissingVariable   = "missing-variable"
	ViolationMissingMetadata   = "missing-metadata"
	ViolationMissingRefYear    = "missing-reference-year"
	ViolationEmptyCohort       = "empty-cohort"
)

// CheckResult holds the results of the input validation gate.
type CheckResult struct {
	Passed        bool
	DatasetPath   string
	MetadataPath  string
	ScenarioCount int
	VariableCount int
	Cohorts       []string // configured order
	CohortCounts  map[string]int
	Violations    []CheckViolation
}

// FatalCount returns the number of fatal violations.
func (r *CheckResult) FatalCount() int {
	n := 0
	for _, v := range r.Violations {
		if v.Fatal {
			n++
		}
	}
	return n
}

// WarningCount returns the number of non-fatal violations.
func (r *CheckResult) WarningCount() int {
	return len(r.Violations) - r.FatalCount()
}
