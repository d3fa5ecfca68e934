package outwriter

import (
	"bytes"
	"testing"
	"time"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture() []schema.SnapshotResult {
	return []schema.SnapshotResult{
		{
			Model:    "AIM",
			Scenario: "SSP1-19",
			Category: "Below 1.5C",
			Values:   map[int]float64{2030: 1.2, 2050: -0.4},
		},
		{
			Model:    "MESSAGE",
			Scenario: "SSP2-45",
			Category: "Lower 2C",
			Values:   map[int]float64{2030: 33.333},
		},
	}
}

func snapshotConfig() *contract.Config {
	return &contract.Config{
		Precision:      1,
		ReferenceYears: []int{2030, 2050},
	}
}

func TestSnapshotGrid(t *testing.T) {
	grid := snapshotGrid(snapshotFixture(), snapshotConfig())

	require.Len(t, grid, 3)
	assert.Equal(t, []string{"model", "scenario", "category", "2030", "2050"}, grid[0])
	assert.Equal(t, []string{"AIM", "SSP1-19", "Below 1.5C", "1.2", "-0.4"}, grid[1])

	// An unobserved year stays missing, not zero.
	assert.Equal(t, []string{"MESSAGE", "SSP2-45", "Lower 2C", "33.3", schema.PlaceholderCell}, grid[2])
}

func TestWriteSnapshotTable(t *testing.T) {
	var buf bytes.Buffer
	series := &schema.SeriesTable{Variable: "Kyoto gases", Unit: "Gt CO2-equiv/yr"}
	err := writeSnapshotTable(snapshotFixture(), series, snapshotConfig(), 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2030")
	assert.Contains(t, out, "1.2")
	assert.Contains(t, out, schema.PlaceholderCell)
	assert.Contains(t, out, "Showing snapshots for 2 scenarios of Kyoto gases (Gt CO2-equiv/yr)")
}
