package cmd

import (
	"github.com/kitchensight/wastetrack/core"
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/spf13/cobra"
)

// insightsCmd generates human-readable findings over the ledger.
var insightsCmd = &cobra.Command{
	Use:   "insights [ledger-path]",
	Short: "Surface notable patterns and outliers in your waste history.",
	Long: `Generate plain-language findings over the whole ledger.

Findings include:
- The heaviest food type and its share of total waste
- The meal period and weekday where most waste happens
- Week-over-week savings
- Pattern outliers, weekdays or meals far above their peers
- Food and meal correlations (e.g., most rice waste happens at lunch)

The outlier detector uses a z-score over weekday and meal averages; lower
thresholds flag more buckets.

Examples:
  # Standard findings
  wastetrack insights

  # More sensitive outlier detection
  wastetrack insights --threshold 1.0

  # Feed findings into another tool
  wastetrack insights --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInsights(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot generate insights", err)
		}
	},
}
