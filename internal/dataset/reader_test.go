package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sampleConfig returns a config exercising region filtering, excludes,
// renames, source mapping and unit conversion at once.
func sampleConfig(datasetPath, metadataPath string) *contract.Config {
	return &contract.Config{
		DatasetPath:  datasetPath,
		MetadataPath: metadataPath,
		Region:       "World",
		Excludes:     []string{"*Baseline"},
		Variables: []contract.VariableSpec{
			{Name: "Net CO2 emissions", Source: "Net CO2 emissions", Unit: "Gt CO2/yr", NetZero: true},
			{Name: "Kyoto gases", Source: "Emissions|Kyoto", Unit: "Gt CO2-equiv/yr"},
			{Name: "Methane", Source: "Emissions|CH4", Unit: "Mt CH4/yr"},
		},
		Renames: map[string]string{
			"Emissions|CO2": "Net CO2 emissions",
		},
		Conversions: map[contract.UnitKey]float64{
			{From: "Mt CO2/yr", To: "Gt CO2/yr"}:             0.001,
			{From: "Mt CO2-equiv/yr", To: "Gt CO2-equiv/yr"}: 0.001,
		},
	}
}

// sampleRows is the wide-format fixture shared by the CSV and XLSX tests.
func sampleRows() [][]string {
	return [][]string{
		{"Model", "Scenario", "Region", "Variable", "Unit", "2020", "2030", "2050"},
		{"AIM", "SSP1-19", "World", "Emissions|CO2", "Mt CO2/yr", "1000", "-1000", ""},
		{"AIM", "SSP1-19", "World", "Emissions|Kyoto", "Mt CO2-equiv/yr", "1200", "800", "100"},
		{"MESSAGE", "SSP2-45", "World", "Emissions|CO2", "Mt CO2/yr", "1500", "1200", "800"},
		{"MESSAGE", "SSP2-45", "R5.2ASIA", "Emissions|CO2", "Mt CO2/yr", "900", "700", "500"},
		{"GCAM", "SSP5-Baseline", "World", "Emissions|CO2", "Mt CO2/yr", "2000", "2500", "3000"},
		{"AIM", "SSP1-19", "World", "Emissions|CH4", "kt CH4/yr", "300", "200", "NA"},
	}
}

func writeSampleCSV(t *testing.T, dir string) string {
	t.Helper()
	content := "Model,Scenario,Region,Variable,Unit,2020,2030,2050\n" +
		"AIM,SSP1-19,World,Emissions|CO2,Mt CO2/yr,1000,-1000,\n" +
		"AIM,SSP1-19,World,Emissions|Kyoto,Mt CO2-equiv/yr,1200,800,100\n" +
		"MESSAGE,SSP2-45,World,Emissions|CO2,Mt CO2/yr,1500,1200,800\n" +
		"MESSAGE,SSP2-45,R5.2ASIA,Emissions|CO2,Mt CO2/yr,900,700,500\n" +
		"GCAM,SSP5-Baseline,World,Emissions|CO2,Mt CO2/yr,2000,2500,3000\n" +
		"AIM,SSP1-19,World,Emissions|CH4,kt CH4/yr,300,200,NA\n"
	path := filepath.Join(dir, "scenarios.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeSampleMetadataCSV(t *testing.T, dir string) string {
	t.Helper()
	content := "Model,Scenario,Category,Project\n" +
		"AIM,SSP1-19,Below 1.5C,SSP\n" +
		"MESSAGE,SSP2-45,Lower 2C,SSP\n"
	path := filepath.Join(dir, "metadata.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeSampleXLSX(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { require.NoError(t, f.Close()) }()

	for i, row := range sampleRows() {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &cells))
	}

	path := filepath.Join(dir, "scenarios.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// assertSampleEnsemble checks the invariants shared by both file formats.
func assertSampleEnsemble(t *testing.T, ensemble *schema.Ensemble) {
	t.Helper()

	// The CH4 variable has no conversion rule from kt CH4/yr; it must be
	// skipped, not fatal.
	require.Len(t, ensemble.Tables, 2)
	require.Len(t, ensemble.Skipped, 1)
	assert.Equal(t, "Methane", ensemble.Skipped[0].Variable)
	assert.Contains(t, ensemble.Skipped[0].Reason, "missing unit conversion")

	co2, ok := ensemble.Table("Net CO2 emissions")
	require.True(t, ok)
	assert.Equal(t, "Gt CO2/yr", co2.Unit)

	// Only World rows survive; the Baseline scenario is excluded.
	scenarios := co2.Scenarios()
	require.Len(t, scenarios, 2)
	assert.Equal(t, schema.ScenarioKey{Model: "AIM", Scenario: "SSP1-19"}, scenarios[0])
	assert.Equal(t, schema.ScenarioKey{Model: "MESSAGE", Scenario: "SSP2-45"}, scenarios[1])

	aim := co2.Rows[schema.ScenarioKey{Model: "AIM", Scenario: "SSP1-19"}]
	require.NotNil(t, aim)
	assert.InDelta(t, 1.0, aim[2020], 1e-9)
	assert.InDelta(t, -1.0, aim[2030], 1e-9)

	// The blank 2050 cell stays missing, never a zero.
	_, present := aim.Value(2050)
	assert.False(t, present)

	kyoto, ok := ensemble.Table("Kyoto gases")
	require.True(t, ok)
	aimKyoto := kyoto.Rows[schema.ScenarioKey{Model: "AIM", Scenario: "SSP1-19"}]
	require.NotNil(t, aimKyoto)
	assert.InDelta(t, 0.1, aimKyoto[2050], 1e-9)
}

func TestLoadEnsembleCSV(t *testing.T) {
	dir := t.TempDir()
	cfg := sampleConfig(writeSampleCSV(t, dir), writeSampleMetadataCSV(t, dir))

	ensemble, err := NewFileLoader().LoadEnsemble(context.Background(), cfg)
	require.NoError(t, err)

	assertSampleEnsemble(t, ensemble)

	category, ok := ensemble.Metadata.Category(schema.ScenarioKey{Model: "AIM", Scenario: "SSP1-19"})
	require.True(t, ok)
	assert.Equal(t, "Below 1.5C", category)
	assert.Equal(t, "SSP", ensemble.Metadata.Attributes[schema.ScenarioKey{Model: "AIM", Scenario: "SSP1-19"}]["Project"])

	_, ok = ensemble.Metadata.Category(schema.ScenarioKey{Model: "GCAM", Scenario: "SSP5-Baseline"})
	assert.False(t, ok)
}

func TestLoadEnsembleXLSX(t *testing.T) {
	dir := t.TempDir()
	cfg := sampleConfig(writeSampleXLSX(t, dir), "")

	ensemble, err := NewFileLoader().LoadEnsemble(context.Background(), cfg)
	require.NoError(t, err)

	assertSampleEnsemble(t, ensemble)
	assert.Empty(t, ensemble.Metadata.Categories)
}

func TestLoadEnsembleUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenarios.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a table"), 0o644))

	cfg := sampleConfig(path, "")
	_, err := NewFileLoader().LoadEnsemble(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestLoadEnsembleGarbageCell(t *testing.T) {
	dir := t.TempDir()
	content := "Model,Scenario,Region,Variable,Unit,2020\n" +
		"AIM,SSP1-19,World,Emissions|CO2,Mt CO2/yr,twelve\n"
	path := filepath.Join(dir, "scenarios.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := sampleConfig(path, "")
	_, err := NewFileLoader().LoadEnsemble(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrNonNumericValue)
}

func TestLoadEnsembleCanceledContext(t *testing.T) {
	dir := t.TempDir()
	cfg := sampleConfig(writeSampleCSV(t, dir), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileLoader().LoadEnsemble(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}
