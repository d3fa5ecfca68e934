package core

import (
	"math"
	"testing"

	"github.com/gigaton-io/gigaton/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRankNetZero sorts by crossing year with never-crossers last.
func TestRankNetZero(t *testing.T) {
	results := []schema.NetZeroResult{
		{Model: "MESSAGE", Scenario: "SSP2-45", Year: math.Inf(1)},
		{Model: "AIM", Scenario: "SSP1-19", Year: 2026, Crossed: true},
		{Model: "GCAM", Scenario: "SSP4-34", Year: math.Inf(1)},
		{Model: "REMIND", Scenario: "SSP1-26", Year: 2031, Crossed: true},
	}

	ranked := RankNetZero(results)

	require.Len(t, ranked, 4)
	assert.Equal(t, "AIM", ranked[0].Model)
	assert.Equal(t, "REMIND", ranked[1].Model)

	// The two never-crossing results tie on +Inf and fall back to key order.
	assert.Equal(t, "GCAM", ranked[2].Model)
	assert.Equal(t, "MESSAGE", ranked[3].Model)
}

// TestLimitRows truncates only when there are more rows than the limit.
func TestLimitRows(t *testing.T) {
	rows := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "b"}, LimitRows(rows, 2))
	assert.Equal(t, rows, LimitRows(rows, 3))
	assert.Equal(t, rows, LimitRows(rows, 10))
	assert.Empty(t, LimitRows([]string{}, 5))
}
