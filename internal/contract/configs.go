package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/kitchensight/wastetrack/schema"
)

// Default values for configuration.
const (
	DefaultTrendDays        = 30
	DefaultForecastDays     = 7
	DefaultResultLimit      = 10
	MaxResultLimit          = 1000
	DefaultTopFoods         = 5
	DefaultRecommendations  = 3
	DefaultOutlierThreshold = 1.5
	DefaultPrecision        = 1

	// Impact factors carried over from standard food-waste accounting.
	DefaultPricePerKg   = 5.0
	DefaultCO2PerKg     = 2.5
	DefaultWaterPerKg   = 1000.0
	SavingsReductionPct = 0.3 // assumed achievable reduction
)

// Config holds the runtime configuration for ledger analysis.
// This struct remains the "final, validated" config.
type Config struct {
	LedgerPath string // Path to the flat-file waste ledger

	Period     schema.TimePeriod // Statistics window
	FoodType   string            // Optional food type filter
	MealFilter schema.MealPeriod // Optional meal period filter ("" disables)

	StartTime time.Time // Optional query range start (zero = unset)
	EndTime   time.Time // Optional query range end, inclusive through end of day

	TrendDays        int     // Lookback window for trend series
	ForecastDays     int     // Horizon for waste forecasts
	ResultLimit      int     // Maximum rows/recommendations to emit
	TopFoods         int     // Size of the top-foods ranking
	OutlierThreshold float64 // Z-score threshold for pattern outliers
	Precision        int     // Decimal precision for numeric columns

	Output     schema.OutputMode
	OutputFile string
	Width      int  // Terminal width override (0 = auto-detect)
	UseColors  bool // Enable colored labels in table output
	ShowImpact bool // Include cost/environmental figures in stats output

	PricePerKg float64 // Cost factor for impact figures
	CO2PerKg   float64 // CO2 factor for impact figures
	WaterPerKg float64 // Water factor for impact figures

	ArchiveBackend   schema.DatabaseBackend
	ArchiveDBConnect string // Please use env var as this is plaintext

	Meals MealSchedule // Meal period classification table

	// Fields for the log command.
	LogTimestamp  string  // Capture time override; empty means "now"
	LogConfidence float64 // Detection confidence for manual entries
	LogImage      string  // Optional stored image reference
	LogMeal       string  // Meal period override; empty means "derive"
}

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// MealsRawInput holds meal window overrides from the YAML config file.
// Each value uses the "HH:MM-HH:MM" form.
type MealsRawInput struct {
	Breakfast *string `mapstructure:"breakfast"`
	Lunch     *string `mapstructure:"lunch"`
	Dinner    *string `mapstructure:"dinner"`
	Snack     *string `mapstructure:"snack"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	LedgerPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Ledger           string `mapstructure:"ledger"`
	Limit            int    `mapstructure:"limit"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	ArchiveBackend   string `mapstructure:"archive-backend"`
	ArchiveDBConnect string `mapstructure:"archive-db-connect"`

	// --- Fields from statsCmd.Flags() ---
	Period string `mapstructure:"period"`
	Impact bool   `mapstructure:"impact"`

	// --- Fields from trendCmd.Flags() ---
	Food string `mapstructure:"food"`
	Meal string `mapstructure:"meal"`
	Days int    `mapstructure:"days"`

	// --- Fields from forecastCmd.Flags() ---
	DaysAhead int `mapstructure:"days-ahead"`

	// --- Fields from insightsCmd.Flags() ---
	Threshold float64 `mapstructure:"threshold"`

	// --- Fields from exportCmd.Flags() ---
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`

	// --- Fields from logCmd.Flags() ---
	Time       string  `mapstructure:"time"`
	Confidence float64 `mapstructure:"confidence"`
	Image      string  `mapstructure:"image"`

	// --- Impact factors from the config file ---
	PricePerKg float64 `mapstructure:"price-per-kg"`
	CO2PerKg   float64 `mapstructure:"co2-per-kg"`
	WaterPerKg float64 `mapstructure:"water-per-kg"`

	// --- Meal windows from the config file ---
	Meals MealsRawInput `mapstructure:"meals"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Meals = MealSchedule{slots: make([]mealSlot, len(c.Meals.slots))}
	copy(clone.Meals.slots, c.Meals.slots)
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processQueryRange(cfg, input); err != nil {
		return err
	}
	if err := processMealSchedule(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	resolveLedgerPath(cfg, input)
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.ShowImpact = input.Impact
	cfg.FoodType = strings.TrimSpace(input.Food)
	cfg.LogTimestamp = strings.TrimSpace(input.Time)
	cfg.LogConfidence = input.Confidence
	cfg.LogImage = strings.TrimSpace(input.Image)
	cfg.LogMeal = strings.TrimSpace(input.Meal)

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit
	cfg.TopFoods = DefaultTopFoods

	// --- 2. Period Validation ---
	cfg.Period = schema.TimePeriod(strings.ToLower(strings.TrimSpace(input.Period)))
	if cfg.Period == "" {
		cfg.Period = schema.AllTime
	}
	if _, ok := schema.ValidTimePeriods[cfg.Period]; !ok {
		return fmt.Errorf("invalid period '%s'. must be day, week, month, year, all", input.Period)
	}

	// --- 3. Meal Filter Validation ---
	cfg.MealFilter = ""
	if cfg.LogMeal != "" {
		period, ok := matchMealPeriod(cfg.LogMeal)
		if !ok {
			return fmt.Errorf("invalid meal period '%s'. must be Breakfast, Lunch, Dinner, Snack, Unknown", input.Meal)
		}
		cfg.MealFilter = period
	}

	// --- 4. Trend and Forecast Windows ---
	if input.Days <= 0 {
		return fmt.Errorf("days must be greater than 0 (received %d)", input.Days)
	}
	cfg.TrendDays = input.Days

	if input.DaysAhead < 0 {
		return fmt.Errorf("days-ahead cannot be negative (received %d)", input.DaysAhead)
	}
	cfg.ForecastDays = input.DaysAhead

	// --- 5. Outlier Threshold ---
	if input.Threshold <= 0 {
		return fmt.Errorf("threshold must be greater than 0 (received %.2f)", input.Threshold)
	}
	cfg.OutlierThreshold = input.Threshold

	// --- 6. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 7. Impact Factors ---
	if input.PricePerKg < 0 || input.CO2PerKg < 0 || input.WaterPerKg < 0 {
		return fmt.Errorf("impact factors cannot be negative")
	}
	cfg.PricePerKg = input.PricePerKg
	cfg.CO2PerKg = input.CO2PerKg
	cfg.WaterPerKg = input.WaterPerKg

	if input.Confidence < 0 || input.Confidence > 1 {
		return fmt.Errorf("confidence must be within [0, 1] (received %.2f)", input.Confidence)
	}

	return nil
}

// processQueryRange handles the optional date range used by export and query paths.
func processQueryRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()

	if input.Start != "" {
		t, err := ParseDate(input.Start)
		if err != nil {
			rel, relErr := ParseRelativeTime(input.Start, now)
			if relErr != nil {
				return fmt.Errorf("invalid start date '%s'. Expected YYYY-MM-DD or 'N [units] ago': %w", input.Start, err)
			}
			t = rel
		}
		cfg.StartTime = t
	}

	if input.End != "" {
		t, err := ParseDate(input.End)
		if err != nil {
			rel, relErr := ParseRelativeTime(input.End, now)
			if relErr != nil {
				return fmt.Errorf("invalid end date '%s'. Expected YYYY-MM-DD or 'N [units] ago': %w", input.End, err)
			}
			t = rel
		}
		// End dates are inclusive through the last instant of the day
		cfg.EndTime = EndOfDay(t)
	}

	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", cfg.StartTime.Format(DateFormat), cfg.EndTime.Format(DateFormat))
	}

	return nil
}

// processMealSchedule builds the classification table from defaults plus
// any config-file overrides.
func processMealSchedule(cfg *Config, input *ConfigRawInput) error {
	schedule := DefaultMealSchedule()

	overrides := map[schema.MealPeriod]*string{
		schema.Breakfast: input.Meals.Breakfast,
		schema.Lunch:     input.Meals.Lunch,
		schema.Dinner:    input.Meals.Dinner,
		schema.Snack:     input.Meals.Snack,
	}

	for _, period := range schema.SchedulableMealPeriods {
		raw := overrides[period]
		if raw == nil {
			continue
		}
		window, err := ParseMealRange(*raw)
		if err != nil {
			return fmt.Errorf("invalid window for %s: %w", strings.ToLower(string(period)), err)
		}
		schedule = schedule.WithRange(period, window)
	}

	cfg.Meals = schedule
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the archive backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.ArchiveBackend = schema.DatabaseBackend(strings.ToLower(input.ArchiveBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.ArchiveBackend]; !ok {
		return fmt.Errorf("invalid archive backend '%s'. must be sqlite, mysql, postgresql, none", input.ArchiveBackend)
	}
	cfg.ArchiveDBConnect = input.ArchiveDBConnect
	return ValidateDatabaseConnectionString(cfg.ArchiveBackend, cfg.ArchiveDBConnect)
}

// matchMealPeriod resolves a user-supplied meal label case-insensitively.
func matchMealPeriod(label string) (schema.MealPeriod, bool) {
	for period := range schema.ValidMealPeriods {
		if strings.EqualFold(label, string(period)) {
			return period, true
		}
	}
	return "", false
}

// resolveLedgerPath picks the ledger file path from the positional argument,
// the --ledger flag, or the default location, in that order.
func resolveLedgerPath(cfg *Config, input *ConfigRawInput) {
	switch {
	case input.LedgerPathStr != "":
		cfg.LedgerPath = input.LedgerPathStr
	case input.Ledger != "":
		cfg.LedgerPath = input.Ledger
	default:
		cfg.LedgerPath = GetLedgerFilePath()
	}
}
