//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedGigatonPath holds the path to a shared gigaton binary built once for all tests.
	sharedGigatonPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getGigatonBinary returns the path to the gigaton binary, building it once if needed.
func getGigatonBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "gigaton-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		gigatonPath := filepath.Join(tempDir, "gigaton")
		buildCmd := exec.Command("go", "build", "-o", gigatonPath, "./cmd/gigaton")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build gigaton: %v", err))
		}

		sharedGigatonPath = gigatonPath
	})

	return sharedGigatonPath
}

// ensembleCSV is a small wide-format dataset covering two variables, two
// regions and one scenario that never reaches net zero.
const ensembleCSV = `Model,Scenario,Region,Variable,Unit,2020,2030,2040,2050
MESSAGE,SSP1-19,World,Emissions|CO2,Mt CO2/yr,40000,18000,2000,-5000
MESSAGE,SSP2-45,World,Emissions|CO2,Mt CO2/yr,41000,39000,36000,33000
REMIND,SSP1-26,World,Emissions|CO2,Mt CO2/yr,39500,28000,12000,-1000
REMIND,SSP5-85,World,Emissions|CO2,Mt CO2/yr,42000,46000,50000,54000
MESSAGE,SSP1-19,R5ASIA,Emissions|CO2,Mt CO2/yr,16000,8000,1000,-2000
MESSAGE,SSP1-19,World,Emissions|Kyoto Gases,Mt CO2-equiv/yr,50000,25000,8000,500
MESSAGE,SSP2-45,World,Emissions|Kyoto Gases,Mt CO2-equiv/yr,52000,50000,47000,44000
REMIND,SSP1-26,World,Emissions|Kyoto Gases,Mt CO2-equiv/yr,51000,38000,20000,4000
`

// metaCSV labels each scenario with an AR6-style climate category.
const metaCSV = `Model,Scenario,Category
MESSAGE,SSP1-19,C1
MESSAGE,SSP2-45,C3
REMIND,SSP1-26,C1
REMIND,SSP5-85,C7
`

// configYAML is the report shape the fixture commands run against.
const configYAML = `region: World
threshold: 0
reference-years: [2030, 2050]
year-pairs:
  - "2020-2030"
  - "2030-2050"
variables:
  - name: Net CO2 emissions
    source: Emissions|CO2
    unit: Gt CO2/yr
    net-zero: true
  - name: Kyoto gases
    source: Emissions|Kyoto Gases
    unit: Gt CO2-equiv/yr
cohorts:
  - name: Below 1.5C
    categories: [C1]
  - name: Lower 2C
    categories: [C3]
  - name: Above 3C
    categories: [C7]
unit-conversions:
  - from: Mt CO2/yr
    to: Gt CO2/yr
    factor: 0.001
  - from: Mt CO2-equiv/yr
    to: Gt CO2-equiv/yr
    factor: 0.001
`

// writeEnsembleFixture writes the shared dataset, metadata and config fixture
// into a fresh directory and returns its path. Commands run with the directory
// as their working directory so the config file is picked up from ".".
func writeEnsembleFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"ensemble.csv":  ensembleCSV,
		"meta.csv":      metaCSV,
		".gigaton.yaml": configYAML,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}

// runGigatonCommand runs the shared binary in workDir and returns its error.
func runGigatonCommand(t *testing.T, workDir string, args ...string) error {
	t.Helper()
	gigatonPath := getGigatonBinary()
	cmd := exec.Command(gigatonPath, args...)
	cmd.Dir = workDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
