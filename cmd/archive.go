package cmd

import (
	"fmt"

	"github.com/gigaton-io/gigaton/internal/archive"
	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// archiveSetup loads minimal configuration needed for archive operations.
// This is used by commands that need archive access without full shared setup.
func archiveSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get archive-related config values
	backendStr := viper.GetString("archive-backend")
	connStr := viper.GetString("archive-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the archive with the loaded config
	if err := archive.InitArchive(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// archiveSetupWrapper wraps archiveSetup to provide PreRunE for archive commands.
func archiveSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveSetup()
}

// archiveMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func archiveMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get archive-related config values
	backendStr := viper.GetString("archive-backend")
	connStr := viper.GetString("archive-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetArchiveDBFilePath()
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr

	return nil
}

// archiveMigrateSetupWrapper wraps archiveMigrateSetup to provide PreRunE for migrate command.
func archiveMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveMigrateSetup()
}

// archiveCmd focused on run archive management.
//
// Note: Archive subcommands use minimal initialization (archiveSetup) instead
// of the full sharedSetup used by report commands. This avoids dataset loading
// and complex config processing for simple archive operations.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage archived report runs and exports",
	Long: `Manage the run archive that tracks finished summary reports.

When enabled, gigaton records every report run, storing:
- Run metadata (timestamp, dataset, configuration, duration)
- Every summary cell with its full statistics and rendered form

This enables longitudinal comparison of report vintages and data export for
BI tools.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show archive statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all archived data
  migrate - Run database schema migrations

Examples:
  # Check archive status
  gigaton archive status --archive-backend sqlite

  # Export for analysis in pandas/DuckDB
  gigaton archive export --archive-backend sqlite --output-file report-data.parquet`,
}

// archiveClearCmd clears the archived report data.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived report runs",
	Long: `Delete all stored report runs and summary cell history.

This removes:
- All report run metadata
- Every archived summary cell across all runs

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting run history after a dataset change
- Database storage is full
- Starting fresh report tracking
- Testing archive features

Examples:
  # Export before clearing
  gigaton archive export --archive-backend sqlite --output-file backup.parquet
  gigaton archive clear --archive-backend sqlite

  # Clear a MySQL archive (set connection string via env variable)
  GIGATON_ARCHIVE_BACKEND=mysql GIGATON_ARCHIVE_DB_CONNECT="..." gigaton archive clear`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := archive.ClearArchive(cfg.ArchiveBackend, contract.GetArchiveDBFilePath(), cfg.ArchiveDBConnect); err != nil {
			contract.LogFatal("Failed to clear archive data", err)
		}
		fmt.Println("Archive data cleared successfully.")
	},
}

// archiveStatusCmd shows archive status.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and connection details",
	Long: `Show detailed information about the report run archive.

Displays:
- Backend type and connection status
- Total number of report runs stored
- Last and oldest report run timestamps
- Total summary cells across all runs
- Database table sizes

Use this to:
- Verify run archival is enabled and working
- Monitor data accumulation over time
- Check database connection health
- Estimate storage requirements

Examples:
  # Check archive status
  gigaton archive status --archive-backend sqlite`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := archive.Manager.GetReportStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
		archive.PrintArchiveStatus(status)
	},
}

// archiveExportCmd exports archived report data to Parquet files.
var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived runs to Parquet for BI tools and analytics",
	Long: `Export all archived report data to Parquet format for use with analytics
tools.

Exports two datasets:
- Report runs - metadata about each report execution
- Summary cells - every cohort statistic with its rendered form

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Schema evolution for future data additions
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Use cases:
- Tracking indicator drift across dataset vintages
- Custom dashboards and visualizations
- Reproducibility audits of published tables

Examples:
  # Export all data
  gigaton archive export --archive-backend sqlite --output-file report-data.parquet

  # Use with DuckDB for analysis
  gigaton archive export --archive-backend sqlite --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.summary_cells.parquet') LIMIT 10"`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := archive.ExecuteArchiveExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export archive data", err)
		}
	},
}

// archiveMigrateCmd runs database migrations for the archive store.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run archive store.

Migrations allow:
- Upgrading to new schema versions when gigaton is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed
- Testing new features on specific schema versions

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gigaton archive migrate --archive-backend sqlite

  # Migrate to specific version
  gigaton archive migrate --archive-backend sqlite --target-version 1

  # Rollback to initial state
  gigaton archive migrate --archive-backend sqlite --target-version 0`,
	PreRunE: archiveMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := archive.MigrateArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
