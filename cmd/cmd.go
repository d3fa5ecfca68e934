// Package cmd defines the command-line interface for gigaton.
package cmd

import (
	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(changesCmd)
	rootCmd.AddCommand(netzeroCmd)
	rootCmd.AddCommand(cohortsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(archiveCmd)

	// Add the archive subcommands to the parent archive command
	archiveCmd.AddCommand(archiveClearCmd)
	archiveCmd.AddCommand(archiveStatusCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	archiveCmd.AddCommand(archiveMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of scenario names or patterns to ignore")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("metadata", "", "Path to the scenario metadata file with category labels")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("region", contract.DefaultRegion, "Region to report on (rows from other regions are dropped)")
	rootCmd.PersistentFlags().Float64("threshold", contract.DefaultThreshold, "Net-zero threshold in the variable's configured unit")
	rootCmd.PersistentFlags().String("variable", "", "Variable for single-variable commands (defaults to the first net-zero variable)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("archive-backend", "", "Run archive backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("archive-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of archiveMigrateCmd to Viper
	archiveMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(archiveMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding archive migrate flags", err)
	}
}
