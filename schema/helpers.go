package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNetZeroYear renders a per-scenario crossing year. Crossing years are
// whole calendar years, so finite values drop the decimals regardless of the
// configured precision.
func FormatNetZeroYear(year float64) string {
	if math.IsInf(year, 1) {
		return NeverCrosses
	}
	return strconv.Itoa(int(year))
}

// FormatYearPair renders a (start, end) year pair as "start-end", the same
// shape the config parser accepts.
func FormatYearPair(start, end int) string {
	return strconv.Itoa(start) + "-" + strconv.Itoa(end)
}

// FormatMembers formats a cohort roster as "AIM|SSP1-19, GCAM|SSP5-34".
// Rosters longer than limit are cut off with a "+N more" suffix; a limit
// of zero or less shows every member.
func FormatMembers(members []ScenarioKey, limit int) string {
	if len(members) == 0 {
		return PlaceholderCell
	}
	keys := make([]string, len(members))
	for i, member := range members {
		keys[i] = member.String()
	}
	if limit > 0 && len(keys) > limit {
		return strings.Join(keys[:limit], ", ") + fmt.Sprintf(" +%d more", len(keys)-limit)
	}
	return strings.Join(keys, ", ")
}

// Finite returns a pointer to v when v is a usable finite number, nil for
// NaN or infinities. JSON and SQL layers use it to keep non-finite values
// out of encoders that reject them.
func Finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
