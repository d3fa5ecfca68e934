package core

import (
	"fmt"
	"math"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
)

// Snapshot returns the series value at a reference year. The second return
// reports whether the year is observed; a missing year stays missing and is
// never coerced to zero.
func Snapshot(series schema.Series, year int) (float64, bool) {
	return series.Value(year)
}

// AnnualChange returns the average annual rate of change across a year pair:
// (value[end] - value[start]) / (end - start). The rate is undefined when
// either endpoint is missing from the series.
func AnnualChange(series schema.Series, pair contract.YearPair) (float64, bool) {
	startValue, ok := series.Value(pair.Start)
	if !ok {
		return 0, false
	}
	endValue, ok := series.Value(pair.End)
	if !ok {
		return 0, false
	}
	return (endValue - startValue) / float64(pair.Span()), true
}

// NetZeroYear returns the interpolated calendar year in which the series
// first drops below the threshold. It walks the observed years in ascending
// order; at the first value strictly below the threshold it interpolates
// linearly from the previous observation:
//
//	slope    = (value - prevValue) / (year - prevYear)
//	crossing = prevYear + floor((threshold - prevValue) / slope) + 1
//
// A value exactly at the threshold does not count as a crossing. A series
// that never drops below the threshold returns +Inf. A series whose first
// observed value is already below the threshold has no previous observation
// to interpolate from and returns ErrUndefinedInterpolation.
func NetZeroYear(series schema.Series, threshold float64) (float64, error) {
	var prevValue float64
	var prevYear int
	havePrev := false

	for _, year := range series.Years() {
		value := series[year]
		if value < threshold {
			if !havePrev {
				return 0, fmt.Errorf("%w: first observed value %g at year %d is already below threshold %g",
					contract.ErrUndefinedInterpolation, value, year, threshold)
			}
			slope := (value - prevValue) / float64(year-prevYear)
			return float64(prevYear) + math.Floor((threshold-prevValue)/slope) + 1, nil
		}
		prevValue = value
		prevYear = year
		havePrev = true
	}
	return math.Inf(1), nil
}
