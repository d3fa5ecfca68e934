package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
)

// ExecuteGigatonCheck runs the check command for CI/CD gating.
// It loads the dataset without producing a report, validates the inputs
// against the configured report shape, and returns a non-zero exit code if
// any fatal violation is found.
func ExecuteGigatonCheck(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	// The check prints its own block, so the usual header is suppressed.
	ensemble, err := loadEnsemble(withSuppressHeader(ctx), cfg)
	if err != nil {
		return err
	}

	result := buildCheckResult(cfg, ensemble)
	printCheckResult(result, time.Since(start))

	if !result.Passed {
		fmt.Printf("%d fatal violation(s) found\n", result.FatalCount())
		os.Exit(1)
	}
	return nil
}

// buildCheckResult validates a loaded ensemble against the configured report
// shape. Fatal findings are the ones that would silently hollow out a report:
// a variable with no usable rows, or a unit nothing can convert. Thin spots
// like an unobserved reference year or an empty cohort only warn.
func buildCheckResult(cfg *contract.Config, ensemble *schema.Ensemble) *schema.CheckResult {
	result := &schema.CheckResult{
		DatasetPath:   ensemble.DatasetPath,
		MetadataPath:  ensemble.MetadataPath,
		ScenarioCount: len(ensemble.Scenarios()),
		VariableCount: len(ensemble.Tables),
		Cohorts:       cfg.CohortNames(),
		CohortCounts:  make(map[string]int),
	}

	for _, skipped := range ensemble.Skipped {
		result.Violations = append(result.Violations, schema.CheckViolation{
			Kind:    schema.ViolationMissingConversion,
			Subject: skipped.Variable,
			Detail:  skipped.Reason,
			Fatal:   true,
		})
	}

	for _, spec := range cfg.Variables {
		table, ok := ensemble.Table(spec.Name)
		if !ok {
			continue // already reported as skipped above
		}
		if len(table.Rows) > 0 {
			continue
		}
		result.Violations = append(result.Violations, schema.CheckViolation{
			Kind:    schema.ViolationMissingVariable,
			Subject: spec.Name,
			Detail:  fmt.Sprintf("no rows matched source %q in region %q", spec.Source, cfg.Region),
			Fatal:   true,
		})
	}

	for _, year := range cfg.ReferenceYears {
		if !yearObserved(ensemble, year) {
			result.Violations = append(result.Violations, schema.CheckViolation{
				Kind:    schema.ViolationMissingRefYear,
				Subject: fmt.Sprintf("%d", year),
				Detail:  "no scenario observes this reference year",
				Fatal:   false,
			})
		}
	}

	for _, key := range ensemble.Scenarios() {
		if _, ok := ensemble.Metadata.Category(key); !ok {
			result.Violations = append(result.Violations, schema.CheckViolation{
				Kind:    schema.ViolationMissingMetadata,
				Subject: key.String(),
				Detail:  "scenario has no metadata category, so it joins no cohort",
				Fatal:   false,
			})
		}
	}

	for _, cohort := range cohortMemberships(cfg, ensemble) {
		result.CohortCounts[cohort.Name] = cohort.Count
		if cohort.Count == 0 {
			result.Violations = append(result.Violations, schema.CheckViolation{
				Kind:    schema.ViolationEmptyCohort,
				Subject: cohort.Name,
				Detail:  "no scenario matched this cohort's categories",
				Fatal:   false,
			})
		}
	}

	result.Passed = result.FatalCount() == 0
	return result
}

// yearObserved reports whether any scenario in any table observes the year.
func yearObserved(ensemble *schema.Ensemble, year int) bool {
	for _, table := range ensemble.Tables {
		for _, series := range table.Rows {
			if _, ok := series.Value(year); ok {
				return true
			}
		}
	}
	return false
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(result *schema.CheckResult, duration time.Duration) {
	printCheckHeader(result, duration)

	if result.Passed {
		printCheckSuccess(result)
	} else {
		printCheckFailure(result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(result *schema.CheckResult, duration time.Duration) {
	fmt.Println("Input Check Results:")

	metadata := result.MetadataPath
	if metadata == "" {
		metadata = "(none)"
	}

	// Define labels and values for dynamic padding
	labels := []string{"Dataset:", "Metadata:"}
	values := []any{
		result.DatasetPath,
		metadata,
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d scenarios across %d variables in %v\n\n", result.ScenarioCount, result.VariableCount, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(result *schema.CheckResult) {
	fmt.Printf("✅ All inputs passed validation checks\n\n")
	fmt.Println("Cohort membership:")

	for _, name := range result.Cohorts {
		fmt.Printf("  %s: %d scenarios\n", name, result.CohortCounts[name])
	}

	if result.WarningCount() > 0 {
		fmt.Println()
		printViolationGroups(result, false)
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(result *schema.CheckResult) {
	fmt.Printf("❌ Input check failed: %d fatal violation(s) across %d findings\n\n", result.FatalCount(), len(result.Violations))
	printViolationGroups(result, true)
}

// printViolationGroups prints violations grouped by kind, in first-seen
// order. When includeFatal is false only warnings are shown.
func printViolationGroups(result *schema.CheckResult, includeFatal bool) {
	kindGroups := make(map[string][]schema.CheckViolation)
	var kinds []string
	for _, v := range result.Violations {
		if v.Fatal && !includeFatal {
			continue
		}
		if _, ok := kindGroups[v.Kind]; !ok {
			kinds = append(kinds, v.Kind)
		}
		kindGroups[v.Kind] = append(kindGroups[v.Kind], v)
	}

	for _, kind := range kinds {
		violations := kindGroups[kind]
		fmt.Printf("Kind: %s (%d findings)\n", kind, len(violations))

		// Show top 5 findings, with "+X more" if needed
		maxToShow := 5
		shown := 0
		for _, v := range violations {
			if shown >= maxToShow {
				remaining := len(violations) - shown
				if remaining > 0 {
					fmt.Printf("  ... and %d more\n", remaining)
				}
				break
			}
			marker := "warning"
			if v.Fatal {
				marker = "fatal"
			}
			fmt.Printf("  - %s: %s (%s)\n", v.Subject, v.Detail, marker)
			shown++
		}
		fmt.Println()
	}
}
