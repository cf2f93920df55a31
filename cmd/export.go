package cmd

import (
	"github.com/kitchensight/wastetrack/core"
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd exports ledger data for external analysis.
var exportCmd = &cobra.Command{
	Use:   "export [ledger-path]",
	Short: "Export ledger data to CSV, JSON or Parquet for analytics.",
	Long: `Export observations, enriched with derived fields, for use in other tools.

Formats:
- csv     - one row per observation with weekday and month columns
- json    - observations plus a full statistics snapshot and metadata
- parquet - columnar observations and daily totals for DuckDB/pandas/Spark

Observations can be restricted by food type, meal period or a date range
before export.

Examples:
  # Enriched CSV to stdout
  wastetrack export --output csv

  # Full JSON document to a file
  wastetrack export --output json --output-file waste.json

  # Parquet datasets for analytics
  wastetrack export --output parquet --output-file waste-data

  # Only rice waste from the last month
  wastetrack export --food Rice --start "1 month" --output csv

  # A fixed reporting window
  wastetrack export --start 2024-05-01 --end 2024-05-31 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot export ledger data", err)
		}
	},
}
