package cmd

import (
	"github.com/kitchensight/wastetrack/core"
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd computes aggregate waste statistics.
var statsCmd = &cobra.Command{
	Use:   "stats [ledger-path]",
	Short: "Show aggregate waste statistics for a time period.",
	Long: `Compute aggregate statistics over the waste ledger.

Reports total weight, item counts and the heaviest food types, along with
per-meal, per-weekday and per-month breakdowns, helping you:
- See which food types dominate your waste
- Compare meal periods and weekdays against each other
- Track week-over-week savings
- Estimate the cost and environmental footprint of waste

Statistics cover the whole ledger by default. Bounded periods (day, week,
month, year) are measured backwards from now.

Examples:
  # All-time statistics
  wastetrack stats

  # Statistics for the last 7 days
  wastetrack stats --period week

  # Include cost, CO2 and water figures
  wastetrack stats --impact

  # Export findings to CSV for tracking
  wastetrack stats --output csv --output-file stats.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute statistics", err)
		}
	},
}
