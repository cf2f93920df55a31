package cmd

import (
	"github.com/kitchensight/wastetrack/core"
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/spf13/cobra"
)

// forecastCmd projects future daily waste.
var forecastCmd = &cobra.Command{
	Use:   "forecast [ledger-path]",
	Short: "Project future daily waste from recent history.",
	Long: `Fit a linear regression over the recent daily series and project it forward.

The fit reports slope, intercept and R-squared so you can judge how much to
trust the projection. Projected values never go below zero.

Use this to:
- Plan purchasing against expected waste
- Set reduction targets with a realistic baseline
- Detect an upward drift before it becomes a problem

Examples:
  # Project the next 7 days
  wastetrack forecast

  # Longer horizon
  wastetrack forecast --days-ahead 14

  # Machine-readable output for dashboards
  wastetrack forecast --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteForecast(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute forecast", err)
		}
	},
}
