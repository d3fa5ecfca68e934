// Package main provides a performance benchmarking tool for the gigaton CLI.
// It measures execution times across scenario ensembles of different sizes and
// command types, running each test multiple times, treating the first parallel
// run as cold and averaging the rest as warm, generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - gigaton binary installed and available in PATH
// - Test ensembles downloaded to the specified base directory
// - Each ensemble directory holds ensemble.csv and meta.csv
//
// Usage: go run benchmark/main.go [ensemble-base-dir]
//
//	ensemble-base-dir: Directory containing test ensembles
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (single-worker average,
// cold run and average of warm parallel runs).
type BenchmarkResult struct {
	Ensemble   string
	Command    string
	SerialTime string
	ColdTime   string
	WarmTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	EnsembleBase  string
	Timeout       time.Duration
	Workers       int
	SerialRuns    int
	ParallelRuns  int
	TestEnsembles []string
	Variables     map[string]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [ensemble-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	ensembleBase := os.Args[1]

	config := BenchmarkConfig{
		EnsembleBase:  ensembleBase,
		Timeout:       5 * time.Minute,
		Workers:       14,
		SerialRuns:    3,
		ParallelRuns:  4,
		TestEnsembles: []string{"sr15", "ar6-world", "ar6-regional", "ngfs-phase4"},
		Variables: map[string]string{
			"sr15":         "Net CO2 emissions",
			"ar6-world":    "Net CO2 emissions",
			"ar6-regional": "Net CO2 emissions",
			"ngfs-phase4":  "Kyoto gases",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the gigaton binary and test ensembles exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if gigaton is available
	if _, err := exec.LookPath("gigaton"); err != nil {
		return fmt.Errorf("gigaton binary not found in PATH")
	}

	// Check if ensembles exist
	for _, ensemble := range config.TestEnsembles {
		datasetPath := filepath.Join(config.EnsembleBase, ensemble, "ensemble.csv")
		if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
			return fmt.Errorf("ensemble %s not found at %s", ensemble, datasetPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured ensembles
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d ensembles, %v timeout, %d workers, serial: %d runs, parallel: %d runs\n",
		len(config.TestEnsembles), config.Timeout, config.Workers, config.SerialRuns, config.ParallelRuns)

	for _, ensemble := range config.TestEnsembles {
		fmt.Printf("Benchmarking %s\n", ensemble)

		ensembleDir := filepath.Join(config.EnsembleBase, ensemble)

		// Full summary report
		result := runBenchmarkSuite(config, ensemble, ensembleDir, "report", "summary report", "")
		results = append(results, result)

		// Net-zero listing
		variable, hasVariable := config.Variables[ensemble]
		if hasVariable {
			args := fmt.Sprintf("--variable \"%s\"", variable)
			desc := fmt.Sprintf("netzero listing (%s)", variable)
			result = runBenchmarkSuite(config, ensemble, ensembleDir, "netzero", desc, args)
			results = append(results, result)
		}

		// Input check
		result = runBenchmarkSuite(config, ensemble, ensembleDir, "check", "input check", "")
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both single-worker and parallel benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, ensemble, ensembleDir, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, ensemble)

	// Helper to run a benchmark phase
	runPhase := func(workers, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, ensembleDir, command, extraArgs, workers, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: Single-worker runs
	_, serialAvg := runPhase(1, config.SerialRuns, "Single-worker")

	// Phase 2: Parallel runs
	coldTime, warmAvg := runPhase(config.Workers, config.ParallelRuns, "Parallel")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Single-worker average: %s, Cold time: %s, Warm average: %s\n", serialAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Ensemble:   ensemble,
		Command:    command,
		SerialTime: serialAvg,
		ColdTime:   coldTimeStr,
		WarmTime:   warmAvg,
	}
}

// runBenchmark executes a gigaton command multiple times with the specified
// worker count and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, ensembleDir, command, extraArgs string, workers, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "ensemble.csv", "--metadata", "meta.csv", "--workers", fmt.Sprintf("%d", workers), "--archive-backend", "none"}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("gigaton", args...)
		cmd.Dir = ensembleDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	switch command {
	case "report":
		return strings.Contains(outputStr, "Report completed in") &&
			strings.Contains(outputStr, "workers")
	case "check":
		return strings.Contains(outputStr, "All inputs passed validation checks")
	default:
		return strings.Contains(outputStr, "Listing completed in")
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/gigaton_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"ensemble", "cmd", "serial_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Ensemble, result.Command, result.SerialTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "report", "Summary Report:")
	printCommandSummary(results, "netzero", "Net-zero Listing:")
	printCommandSummary(results, "check", "Input Check:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Serial: %s, Cold: %s, Warm: %s\n", result.Ensemble, result.SerialTime, result.ColdTime, result.WarmTime)
		}
	}
}
