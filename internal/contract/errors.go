package contract

import "errors"

// Sentinel errors for the computation. Callers wrap these with scenario or
// indicator context and match with errors.Is.
var (
	// ErrMissingUnitConversion means a dataset row's unit has no configured
	// conversion into the variable's target unit. The affected indicator is
	// skipped; the rest of the report continues.
	ErrMissingUnitConversion = errors.New("missing unit conversion")

	// ErrUndefinedInterpolation means a net-zero slope would be computed
	// against an undefined previous point, i.e. the first observed value is
	// already below the threshold. The affected scenario is excluded from
	// the cell rather than fed into the statistics.
	ErrUndefinedInterpolation = errors.New("undefined interpolation")

	// ErrEmptyCohort means a cohort filter matched zero scenarios. Warning
	// only; the cell renders as a placeholder.
	ErrEmptyCohort = errors.New("empty cohort")

	// ErrMalformedYearPair means a year pair has start >= end or failed to
	// parse. Rejected at config validation, before any computation runs.
	ErrMalformedYearPair = errors.New("malformed year pair")

	// ErrUnknownCohort means a value was added for a cohort the accumulator
	// was never configured with.
	ErrUnknownCohort = errors.New("unknown cohort")

	// ErrFinalized means an accumulator received an addition after its
	// summaries were computed.
	ErrFinalized = errors.New("accumulator already finalized")

	// ErrNonNumericValue means a NaN or otherwise unusable number reached
	// the accumulator. Malformed input fails fast instead of propagating
	// through the statistics.
	ErrNonNumericValue = errors.New("non-numeric value")
)
