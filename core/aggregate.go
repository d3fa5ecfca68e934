package core

import (
	"fmt"
	"math"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
)

// rowKey identifies one report row before finalization.
type rowKey struct {
	header    string
	subHeader string
}

// Accumulator collects indicator values into (cohort, header, sub-header)
// cells and freezes them into a summary table exactly once. Rows keep their
// registration order; cohort columns keep the configured order. Cohorts may
// overlap, so one scenario's value can land in several cells of the same row.
type Accumulator struct {
	cohorts   []string
	known     map[string]struct{}
	cells     map[schema.CellKey][]float64
	rowOrder  []rowKey
	rowKinds  map[rowKey]schema.IndicatorKind
	warnings  []string
	finalized bool
}

// NewAccumulator creates an accumulator with the configured cohort columns.
func NewAccumulator(cohorts []string) *Accumulator {
	known := make(map[string]struct{}, len(cohorts))
	for _, cohort := range cohorts {
		known[cohort] = struct{}{}
	}
	return &Accumulator{
		cohorts:  cohorts,
		known:    known,
		cells:    make(map[schema.CellKey][]float64),
		rowKinds: make(map[rowKey]schema.IndicatorKind),
	}
}

// RegisterRow pins a row into the output in call order, so indicator rows
// appear even when every cohort cell ends up empty. Registering the same
// row twice is a no-op.
func (a *Accumulator) RegisterRow(header, subHeader string, kind schema.IndicatorKind) error {
	if a.finalized {
		return contract.ErrFinalized
	}
	a.registerRow(rowKey{header: header, subHeader: subHeader}, kind)
	return nil
}

func (a *Accumulator) registerRow(row rowKey, kind schema.IndicatorKind) {
	if _, seen := a.rowKinds[row]; seen {
		return
	}
	a.rowOrder = append(a.rowOrder, row)
	a.rowKinds[row] = kind
}

// Add records one scenario's indicator value into a cell. NaN and negative
// infinity never enter a cell; +Inf is a legitimate net-zero outcome.
func (a *Accumulator) Add(cohort, header, subHeader string, kind schema.IndicatorKind, value float64) error {
	if a.finalized {
		return contract.ErrFinalized
	}
	if _, ok := a.known[cohort]; !ok {
		return fmt.Errorf("%w: %q", contract.ErrUnknownCohort, cohort)
	}
	if math.IsNaN(value) || math.IsInf(value, -1) {
		return fmt.Errorf("%w: %v for %s / %s", contract.ErrNonNumericValue, value, header, subHeader)
	}

	a.registerRow(rowKey{header: header, subHeader: subHeader}, kind)
	key := schema.CellKey{Cohort: cohort, Header: header, SubHeader: subHeader}
	a.cells[key] = append(a.cells[key], value)
	return nil
}

// Warn appends a warning carried into the finalized table.
func (a *Accumulator) Warn(message string) {
	a.warnings = append(a.warnings, message)
}

// Finalize computes every cell's summary and freezes the accumulator.
// Calling it a second time is an error, as is any Add afterwards.
func (a *Accumulator) Finalize() (*schema.SummaryTable, error) {
	if a.finalized {
		return nil, contract.ErrFinalized
	}
	a.finalized = true

	table := &schema.SummaryTable{
		Cohorts:  append([]string(nil), a.cohorts...),
		Rows:     make([]schema.SummaryRow, 0, len(a.rowOrder)),
		Warnings: append([]string(nil), a.warnings...),
	}
	for _, row := range a.rowOrder {
		out := schema.SummaryRow{
			Header:    row.header,
			SubHeader: row.subHeader,
			Kind:      a.rowKinds[row],
			Cells:     make(map[string]schema.CellSummary),
		}
		for _, cohort := range a.cohorts {
			key := schema.CellKey{Cohort: cohort, Header: row.header, SubHeader: row.subHeader}
			values := a.cells[key]
			if len(values) == 0 {
				continue // absent cell renders as the placeholder
			}
			out.Cells[cohort] = SummarizeCell(values)
		}
		table.Rows = append(table.Rows, out)
	}
	return table, nil
}
