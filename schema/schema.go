// Package schema has configs, models and shared helpers for all parts of wastetrack.
package schema

import "time"

// TimestampFormat is the wire format for observation timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// Observation represents a single detected waste event. Observations are
// immutable once appended to the ledger and keep their arrival order.
type Observation struct {
	FoodType      string     `json:"food_type"`      // Food category label from the detector
	WeightGrams   float64    `json:"weight_grams"`   // Estimated weight in grams (never negative)
	Timestamp     string     `json:"timestamp"`      // Capture time as "YYYY-MM-DD HH:MM:SS"
	EventTime     time.Time  `json:"-"`              // Structured capture time, parsed once at creation
	TimeValid     bool       `json:"-"`              // False when Timestamp could not be parsed
	Confidence    float64    `json:"confidence"`     // Detection confidence (0-1, informational only)
	MealPeriod    MealPeriod `json:"meal_period"`    // Meal period the event was classified into
	ImageFilename string     `json:"image_filename"` // Optional path to the stored detection image
}

// Snapshot is a computed summary of aggregate statistics over some subset
// of the ledger. The all-time snapshot is cached behind a dirty flag; any
// bounded-period snapshot is recomputed on demand and never cached.
type Snapshot struct {
	TotalWeight float64 `json:"total_weight"` // Total weight of waste in grams
	TotalItems  int     `json:"total_items"`  // Total number of waste items

	WeightByType map[string]float64 `json:"weight_by_type"` // Weight keyed by food type
	CountByType  map[string]int     `json:"count_by_type"`  // Item count keyed by food type
	TopFoods     []string           `json:"top_foods"`      // Top wasted food types by weight

	WeightByMeal  map[string]float64 `json:"weight_by_meal"`  // Weight keyed by meal period
	WeightByDay   map[string]float64 `json:"weight_by_day"`   // Weight keyed by weekday name
	WeightByMonth map[string]float64 `json:"weight_by_month"` // Weight keyed by month name

	DailyTrend []float64 `json:"daily_trend"` // Daily totals for the recent lookback window

	WasteSavedTotal      float64 `json:"waste_saved_total"`      // Week-over-week reduction in grams (>= 0)
	WasteSavedPercentage float64 `json:"waste_saved_percentage"` // Week-over-week reduction percentage (>= 0)
}

// TrendPoint is a single bucket in a chronologically ordered trend series.
type TrendPoint struct {
	Label  string  `json:"label"`  // Calendar date "YYYY-MM-DD" or hour "HH:00"
	Weight float64 `json:"weight"` // Summed weight for the bucket in grams
}

// TrendSeries is an ordered sequence of buckets over a lookback window
// together with the overall direction of change.
type TrendSeries struct {
	Points           []TrendPoint `json:"points"`            // Buckets in chronological order
	ChangePercentage float64      `json:"change_percentage"` // Endpoint delta: (last-first)/first*100, 0 when first is 0
	Increasing       bool         `json:"increasing"`        // True when the series ends above its start
}

// Values returns the bucket weights in chronological order.
func (t TrendSeries) Values() []float64 {
	values := make([]float64, len(t.Points))
	for i, p := range t.Points {
		values[i] = p.Weight
	}
	return values
}

// RegressionModel is an ordinary-least-squares line fitted over sequential
// day indices, used as the forecasting signal.
type RegressionModel struct {
	Intercept float64 `json:"intercept"` // Fitted value at index 0
	Slope     float64 `json:"slope"`     // Grams of change per day index
	RSquared  float64 `json:"r_squared"` // Coefficient of determination (0 when variance is ~0)
}

// Recommendation is a ranked reduction suggestion for one
// (food type, meal period) group.
type Recommendation struct {
	FoodType         string     `json:"food_type"`         // Food category of the group
	MealPeriod       MealPeriod `json:"meal_period"`       // Meal period of the group
	CurrentWaste     float64    `json:"current_waste"`     // Observed total weight for the group in grams
	PotentialSavings float64    `json:"potential_savings"` // Estimated savings at the standard reduction share
	Message          string     `json:"message"`           // Generated natural-language suggestion
}

// ImpactReport holds derived cost and environmental figures for a snapshot.
type ImpactReport struct {
	WasteCost        float64 `json:"waste_cost"`        // Cost of recorded waste at the configured price per kg
	PotentialSavings float64 `json:"potential_savings"` // Cost savings at the standard reduction share
	CO2Kg            float64 `json:"co2_kg"`            // Estimated CO2 footprint in kg
	WaterLiters      float64 `json:"water_liters"`      // Estimated embedded water in liters
}

// ArchiveStatus describes the state of the observation archive store.
type ArchiveStatus struct {
	Backend      string    `json:"backend"`      // Active archive backend
	Location     string    `json:"location"`     // Table or storage target
	Observations int64     `json:"observations"` // Number of archived observations
	OldestEvent  time.Time `json:"oldest_event"` // Capture time of the oldest archived row (zero when empty)
	NewestEvent  time.Time `json:"newest_event"` // Capture time of the newest archived row (zero when empty)
}
