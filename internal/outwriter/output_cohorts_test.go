package outwriter

import (
	"bytes"
	"testing"
	"time"

	"github.com/gigaton-io/gigaton/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cohortFixture() []schema.CohortResult {
	return []schema.CohortResult{
		{
			Name:       "Below 1.5C",
			Categories: []string{"Below 1.5C"},
			Count:      2,
			Members: []schema.ScenarioKey{
				{Model: "AIM", Scenario: "SSP1-19"},
				{Model: "REMIND", Scenario: "SSP1-26"},
			},
		},
		{
			Name:       "Paris range",
			Categories: []string{"Below 1.5C", "Lower 2C"},
			Count:      5,
			Members: []schema.ScenarioKey{
				{Model: "AIM", Scenario: "SSP1-19"},
				{Model: "GCAM", Scenario: "SSP1-26"},
				{Model: "IMAGE", Scenario: "SSP1-19"},
				{Model: "MESSAGE", Scenario: "SSP2-45"},
				{Model: "REMIND", Scenario: "SSP1-26"},
			},
		},
		{
			Name:       "Above 3C",
			Categories: []string{"Above 3C"},
			Count:      0,
		},
	}
}

func TestCohortGrid(t *testing.T) {
	grid := cohortGrid(cohortFixture())

	require.Len(t, grid, 4)
	assert.Equal(t, []string{"cohort", "count", "categories", "members"}, grid[0])
	assert.Equal(t, []string{
		"Below 1.5C", "2", "Below 1.5C", "AIM|SSP1-19, REMIND|SSP1-26",
	}, grid[1])

	// Machine-readable output carries the full roster without truncation.
	assert.Equal(t, "AIM|SSP1-19, GCAM|SSP1-26, IMAGE|SSP1-19, MESSAGE|SSP2-45, REMIND|SSP1-26", grid[2][3])
	assert.Equal(t, []string{"Above 3C", "0", "Above 3C", schema.PlaceholderCell}, grid[3])
}

func TestWriteCohortTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeCohortTable(cohortFixture(), 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Below 1.5C")
	assert.Contains(t, out, "+1 more")
	assert.Contains(t, out, "Resolved 3 cohorts covering 7 scenario memberships")
}
