package schema

import (
	"fmt"
	"math"
	"strconv"
)

// CellKey identifies one aggregation cell: a cohort column crossed with an
// indicator row.
type CellKey struct {
	Cohort    string `json:"cohort"`
	Header    string `json:"header"`
	SubHeader string `json:"sub_header"`
}

// CellSummary is the finalized distributional summary of one cell. Values
// may be +Inf for net-zero rows whose scenarios never cross the threshold.
type CellSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"-"`
	Max    float64 `json:"-"`
	Median float64 `json:"-"`
	Q1     float64 `json:"-"`
	Q3     float64 `json:"-"`
}

// SummaryRow is one (header, sub-header) row of the report across all
// cohort columns. A cohort absent from Cells contributed nothing, either
// because it was empty or because the cell was skipped after an error.
type SummaryRow struct {
	Header    string                 `json:"header"`
	SubHeader string                 `json:"sub_header"`
	Kind      IndicatorKind          `json:"kind"`
	Cells     map[string]CellSummary `json:"-"`
}

// Cell returns the summary for a cohort column and whether it exists.
func (r SummaryRow) Cell(cohort string) (CellSummary, bool) {
	c, ok := r.Cells[cohort]
	return c, ok
}

// RenderCell renders a cohort column of this row, falling back to the
// placeholder when the cohort contributed nothing.
func (r SummaryRow) RenderCell(cohort string, precision int) string {
	summary, ok := r.Cells[cohort]
	if !ok {
		return PlaceholderCell
	}
	return summary.Render(precision)
}

// FormatIndicatorValue renders one indicator value at the given precision.
// Positive infinity renders as the never-crossing sentinel.
func FormatIndicatorValue(value float64, precision int) string {
	if math.IsInf(value, 1) {
		return NeverCrosses
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// Render formats the summary for display. Cells with fewer contributing
// scenarios than MinQuartileCount show the full observed range; everything
// else shows the median with the interquartile range.
func (s CellSummary) Render(precision int) string {
	if s.Count == 0 {
		return PlaceholderCell
	}
	if s.Count < MinQuartileCount {
		return fmt.Sprintf("[%s, %s]",
			FormatIndicatorValue(s.Min, precision),
			FormatIndicatorValue(s.Max, precision))
	}
	return fmt.Sprintf("%s [%s, %s]",
		FormatIndicatorValue(s.Median, precision),
		FormatIndicatorValue(s.Q1, precision),
		FormatIndicatorValue(s.Q3, precision))
}

// SummaryTable is the final report artifact: indicator rows in first-seen
// order, cohort columns in configured order. Identical inputs always produce
// an identical table.
type SummaryTable struct {
	Cohorts  []string
	Rows     []SummaryRow
	Warnings []string
}

// RowCount returns the number of indicator rows.
func (t *SummaryTable) RowCount() int {
	return len(t.Rows)
}

// CellCount returns the number of populated cells across all rows.
func (t *SummaryTable) CellCount() int {
	n := 0
	for _, row := range t.Rows {
		n += len(row.Cells)
	}
	return n
}
