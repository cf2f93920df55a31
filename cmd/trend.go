package cmd

import (
	"github.com/kitchensight/wastetrack/core"
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/spf13/cobra"
)

// trendCmd builds the daily waste trend series.
var trendCmd = &cobra.Command{
	Use:   "trend [ledger-path]",
	Short: "Track how daily waste changes over a lookback window.",
	Long: `Build a day-by-day waste series over a lookback window.

Shows waste evolution across the window, helping you:
- Identify when waste started increasing
- Validate that kitchen changes reduced waste over time
- Compare the trajectory of a single food type or meal period
- Spot seasonal or weekly patterns

Days with no observations appear as zero, so the series always covers the
full window.

Examples:
  # Daily waste over the last 30 days
  wastetrack trend

  # Shorter window
  wastetrack trend --days 14

  # Track a single food type
  wastetrack trend --food Rice --days 60

  # Track dinner waste only
  wastetrack trend --meal Dinner`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrend(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build trend series", err)
		}
	},
}
