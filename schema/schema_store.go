package schema

import "time"

// ReportRunRecord represents a row from the gigaton_report_runs table.
type ReportRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	DatasetPath   string
	ScenarioCount int32
	VariableCount int32
	CohortCount   int32
	ConfigParams  *string
}

// SummaryCellRecord represents a row from the gigaton_summary_cells table.
// Numeric fields are nullable: an empty cell stores no statistics, and
// non-finite net-zero summaries store NULL with the formatted string
// carrying the never-crosses marker.
type SummaryCellRecord struct {
	RunID       int64
	RecordTime  time.Time
	Cohort      string
	Header      string
	SubHeader   string
	ValueCount  int32
	MinValue    *float64
	MaxValue    *float64
	MedianValue *float64
	Q1Value     *float64
	Q3Value     *float64
	Formatted   string
}
