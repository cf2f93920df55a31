package cmd

import (
	"strconv"

	"github.com/kitchensight/wastetrack/core"
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/spf13/cobra"
)

// logSetupWrapper runs sharedSetup without forwarding positional arguments,
// since log uses them for the food type and weight rather than the ledger path.
func logSetupWrapper(cmd *cobra.Command, _ []string) error {
	return sharedSetup(rootCtx, cmd, nil)
}

// logCmd appends one waste observation to the ledger.
var logCmd = &cobra.Command{
	Use:   "log <food-type> <weight-grams>",
	Short: "Record a food waste observation in the ledger.",
	Long: `Append a single waste observation to the append-only ledger file.

Each observation records:
- Food type (e.g., Rice, Bread, Salad)
- Weight in grams
- Capture timestamp (defaults to now)
- Meal period (derived from the timestamp unless overridden)
- Optional detection confidence and image reference

Examples:
  # Log 250 grams of rice right now
  wastetrack log Rice 250

  # Log with an explicit capture time
  wastetrack log Bread 120 --time "2024-05-15 08:30:00"

  # Override the derived meal period
  wastetrack log Salad 80 --meal Dinner

  # Attach detector metadata
  wastetrack log Pasta 310 --confidence 0.87 --image plate_0042.jpg`,
	Args:    cobra.ExactArgs(2),
	PreRunE: logSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			contract.LogFatal("Invalid weight value", err)
		}
		if err := core.ExecuteLogWaste(rootCtx, cfg, args[0], weight); err != nil {
			contract.LogFatal("Cannot log observation", err)
		}
	},
}
