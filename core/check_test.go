package core

import (
	"testing"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cleanEnsemble is the pipeline fixture with its defects repaired: nothing
// skipped and every scenario categorized.
func cleanEnsemble() *schema.Ensemble {
	ensemble := pipelineEnsemble()
	ensemble.Skipped = nil
	ensemble.Metadata.Categories[keyGCAM] = "Above 3C"
	return ensemble
}

// TestBuildCheckResultClean passes a defect-free ensemble.
func TestBuildCheckResultClean(t *testing.T) {
	result := buildCheckResult(pipelineConfig(), cleanEnsemble())

	assert.True(t, result.Passed)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 4, result.ScenarioCount)
	assert.Equal(t, 2, result.VariableCount)
	assert.Equal(t, []string{"Below 1.5C", "Paris range", "Above 3C"}, result.Cohorts)
	assert.Equal(t, 2, result.CohortCounts["Below 1.5C"])
	assert.Equal(t, 3, result.CohortCounts["Paris range"])
	assert.Equal(t, 1, result.CohortCounts["Above 3C"])
}

// TestBuildCheckResultFindings classifies the pipeline fixture's defects:
// one fatal conversion gap, plus metadata and cohort warnings.
func TestBuildCheckResultFindings(t *testing.T) {
	result := buildCheckResult(pipelineConfig(), pipelineEnsemble())

	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.FatalCount())
	assert.Equal(t, 2, result.WarningCount())

	kinds := make(map[string]schema.CheckViolation)
	for _, v := range result.Violations {
		kinds[v.Kind] = v
	}

	conversion, ok := kinds[schema.ViolationMissingConversion]
	require.True(t, ok)
	assert.True(t, conversion.Fatal)
	assert.Equal(t, "Methane", conversion.Subject)

	metadata, ok := kinds[schema.ViolationMissingMetadata]
	require.True(t, ok)
	assert.False(t, metadata.Fatal)
	assert.Equal(t, "GCAM|SSP5-60", metadata.Subject)

	cohort, ok := kinds[schema.ViolationEmptyCohort]
	require.True(t, ok)
	assert.False(t, cohort.Fatal)
	assert.Equal(t, "Above 3C", cohort.Subject)
}

// TestBuildCheckResultMissingVariable flags a configured variable whose
// source matched no rows at all.
func TestBuildCheckResultMissingVariable(t *testing.T) {
	cfg := pipelineConfig()
	cfg.Variables = append(cfg.Variables, contract.VariableSpec{
		Name:   "Nitrous oxide",
		Source: "Emissions|N2O",
		Unit:   "Gt CO2-equiv/yr",
	})

	ensemble := cleanEnsemble()
	ensemble.Tables = append(ensemble.Tables, schema.NewSeriesTable("Nitrous oxide", "Gt CO2-equiv/yr"))

	result := buildCheckResult(cfg, ensemble)

	assert.False(t, result.Passed)
	require.Equal(t, 1, result.FatalCount())
	violation := result.Violations[0]
	assert.Equal(t, schema.ViolationMissingVariable, violation.Kind)
	assert.Equal(t, "Nitrous oxide", violation.Subject)
	assert.Contains(t, violation.Detail, "Emissions|N2O")
}

// TestBuildCheckResultUnobservedReferenceYear warns without failing.
func TestBuildCheckResultUnobservedReferenceYear(t *testing.T) {
	cfg := pipelineConfig()
	cfg.ReferenceYears = append(cfg.ReferenceYears, 2100)

	result := buildCheckResult(cfg, cleanEnsemble())

	assert.True(t, result.Passed, "an unobserved reference year is not fatal")
	require.Equal(t, 1, result.WarningCount())
	violation := result.Violations[0]
	assert.Equal(t, schema.ViolationMissingRefYear, violation.Kind)
	assert.Equal(t, "2100", violation.Subject)
}
