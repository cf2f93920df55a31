package cmd

import (
	"github.com/kitchensight/wastetrack/core"
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/internal/ledgerio"
	"github.com/kitchensight/wastetrack/schema"
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

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}

	return nil
}

// archiveSetupWrapper wraps archiveSetup to provide PreRunE for archive commands.
func archiveSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveSetup()
}

// archiveMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func archiveMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("archive-backend")
	connStr := viper.GetString("archive-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

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

// archiveCmd focused on archive data management.
//
// Note: Archive subcommands use minimal initialization (archiveSetup) instead
// of the full sharedSetup used by analysis commands. This avoids ledger
// validation and complex config processing for simple archive operations.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the long-term observation archive database",
	Long: `Manage the database archive that mirrors the flat-file ledger.

When enabled, every logged observation is also written to a SQL database,
enabling longitudinal queries, BI dashboards and multi-device aggregation
without parsing the CSV ledger.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show archive statistics and connection info
  sync    - Copy the current ledger file into the archive
  clear   - Remove all archived observations
  migrate - Run database schema migrations

Examples:
  # Check archive status
  wastetrack archive status --archive-backend sqlite

  # Backfill the archive from the ledger file
  wastetrack archive sync --archive-backend sqlite`,
}

// archiveStatusCmd shows archive status.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and connection details",
	Long: `Show detailed information about the observation archive.

Displays:
- Backend type and connection status
- Total number of archived observations
- Oldest and newest observation timestamps

Use this to:
- Verify the archive is connected and collecting data
- Monitor archive growth over time
- Debug archive-related issues

Examples:
  # Check archive status
  wastetrack archive status --archive-backend sqlite`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteArchiveStatus(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
	},
}

// archiveClearCmd clears the archive.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived observations",
	Long: `Delete all archived observations from the configured backend.

The flat-file ledger is never touched; only the database mirror is cleared.

Use this when:
- The ledger file was rewritten and the archive is stale
- Starting fresh archive history
- Testing archive features

Examples:
  # Clear SQLite archive (default)
  wastetrack archive clear --archive-backend sqlite

  # Clear MySQL archive (set connection string via env variable)
  WASTETRACK_ARCHIVE_BACKEND=mysql WASTETRACK_ARCHIVE_DB_CONNECT="..." wastetrack archive clear`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteArchiveClear(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to clear archive", err)
		}
	},
}

// archiveSyncCmd copies the ledger file into the archive database.
var archiveSyncCmd = &cobra.Command{
	Use:   "sync [ledger-path]",
	Short: "Copy the current ledger file into the archive database",
	Long: `Insert every observation from the flat-file ledger into the archive.

Use this to backfill an archive that was enabled after logging started, or
to rebuild the archive after clearing it.

Examples:
  # Backfill the default ledger into SQLite
  wastetrack archive sync --archive-backend sqlite

  # Backfill a specific ledger file into PostgreSQL
  wastetrack archive sync kitchen.csv --archive-backend postgresql --archive-db-connect "host=... dbname=..."`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteArchiveSync(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to sync archive", err)
		}
	},
}

// archiveMigrateCmd runs database migrations for the archive store.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the observation archive.

Migrations allow:
- Upgrading to new schema versions when wastetrack is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  wastetrack archive migrate --archive-backend sqlite

  # Migrate to specific version
  wastetrack archive migrate --target-version 1

  # Rollback to previous version
  wastetrack archive migrate --target-version 0`,
	PreRunE: archiveMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := ledgerio.MigrateArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
