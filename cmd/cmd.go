// Package cmd defines the command-line interface for wastetrack.
package cmd

import (
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(archiveCmd)

	// Add the archive subcommands to the parent archive command
	archiveCmd.AddCommand(archiveStatusCmd)
	archiveCmd.AddCommand(archiveSyncCmd)
	archiveCmd.AddCommand(archiveClearCmd)
	archiveCmd.AddCommand(archiveMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("ledger", "", "Path to the waste ledger CSV file")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("period", string(schema.AllTime), "Statistics window: day or week or month or year or all")
	rootCmd.PersistentFlags().StringP("food", "f", "", "Filter by food type")
	rootCmd.PersistentFlags().String("meal", "", "Meal period: Breakfast, Lunch, Dinner or Snack")
	rootCmd.PersistentFlags().Int("days", contract.DefaultTrendDays, "Lookback window in days for trend series")
	rootCmd.PersistentFlags().Int("days-ahead", contract.DefaultForecastDays, "Forecast horizon in days")
	rootCmd.PersistentFlags().Float64("threshold", contract.DefaultOutlierThreshold, "Z-score threshold for pattern outliers")
	rootCmd.PersistentFlags().String("start", "", "Start date in ISO8601 or time ago")
	rootCmd.PersistentFlags().String("end", "", "End date in ISO8601 or time ago")
	rootCmd.PersistentFlags().Bool("impact", false, "Include cost and environmental figures in stats output")
	rootCmd.PersistentFlags().Float64("price-per-kg", contract.DefaultPricePerKg, "Cost factor for impact figures ($ per kg)")
	rootCmd.PersistentFlags().Float64("co2-per-kg", contract.DefaultCO2PerKg, "CO2 factor for impact figures (kg per kg)")
	rootCmd.PersistentFlags().Float64("water-per-kg", contract.DefaultWaterPerKg, "Water factor for impact figures (liters per kg)")
	rootCmd.PersistentFlags().String("archive-backend", string(schema.NoneBackend), "Archive backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("archive-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of logCmd to Viper
	logCmd.Flags().String("time", "", "Capture time as 'YYYY-MM-DD HH:MM:SS' (defaults to now)")
	logCmd.Flags().Float64("confidence", 1.0, "Detection confidence between 0 and 1")
	logCmd.Flags().String("image", "", "Stored image reference for the observation")
	if err := viper.BindPFlags(logCmd.Flags()); err != nil {
		contract.LogFatal("Error binding log flags", err)
	}

	// Bind all flags of archiveMigrateCmd to Viper
	archiveMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(archiveMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding archive migrate flags", err)
	}
}
