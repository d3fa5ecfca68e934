package core

import (
	"math"
	"sort"

	"github.com/gigaton-io/gigaton/schema"
)

// Quantile returns the p-th quantile of a sorted sample using linear
// interpolation between the two nearest ranks (index p*(n-1)). Samples may
// contain +Inf entries; they sort after every finite value, so a quantile
// landing on them is itself +Inf.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	index := p * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	// Linear interpolation between the neighboring ranks. With +Inf at the
	// upper rank the sum is +Inf, which is the intended reading.
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Median returns the middle value of a sorted sample.
func Median(sorted []float64) float64 {
	return Quantile(sorted, 0.5)
}

// SummarizeCell computes the distributional summary of one cell's values.
// The input does not need to be sorted and is not modified.
func SummarizeCell(values []float64) schema.CellSummary {
	summary := schema.CellSummary{Count: len(values)}
	if summary.Count == 0 {
		return summary
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	summary.Min = sorted[0]
	summary.Max = sorted[len(sorted)-1]
	summary.Median = Median(sorted)
	summary.Q1 = Quantile(sorted, 0.25)
	summary.Q3 = Quantile(sorted, 0.75)
	return summary
}
