package cmd

import (
	"github.com/kitchensight/wastetrack/core"
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/spf13/cobra"
)

// recommendCmd proposes waste reduction actions.
var recommendCmd = &cobra.Command{
	Use:   "recommend [ledger-path]",
	Short: "Suggest portion reductions for the heaviest food and meal pairings.",
	Long: `Rank food and meal pairings by accumulated waste and propose reductions.

Each recommendation names the pairing, its current waste weight, and the
savings a modest portion reduction would achieve. Pairings are ranked from
heaviest to lightest.

Examples:
  # Top three recommendations
  wastetrack recommend

  # More recommendations
  wastetrack recommend --limit 10

  # Export for a weekly report
  wastetrack recommend --output csv --output-file actions.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRecommend(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build recommendations", err)
		}
	},
}
