package core

import (
	"fmt"
	"math"
	"time"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

// Insights returns human-readable findings over the whole ledger. Results
// are memoized and reused until the ledger changes.
func (l *Ledger) Insights() []string {
	l.mu.Lock()
	if l.insights != nil {
		out := append([]string{}, l.insights...)
		l.mu.Unlock()
		return out
	}
	l.mu.Unlock()

	snap := l.Statistics(schema.AllTime)
	insights := buildInsights(snap, l.nextWeekForecast(), l.Outliers(contract.DefaultOutlierThreshold))

	l.mu.Lock()
	l.insights = insights
	l.mu.Unlock()
	return append([]string{}, insights...)
}

// buildInsights renders the fixed ordered list: totals, top food, trend
// direction, top meal, top weekday, week-over-week savings when positive,
// next-week projection, then any pattern outliers.
func buildInsights(snap schema.Snapshot, nextWeek float64, outliers []string) []string {
	if snap.TotalItems == 0 {
		return []string{"No waste recorded yet. Log observations to unlock insights."}
	}

	insights := []string{fmt.Sprintf(
		"Total waste recorded: %s across %d items",
		schema.FormatGrams(snap.TotalWeight), snap.TotalItems)}

	if len(snap.TopFoods) > 0 {
		top := snap.TopFoods[0]
		share := 0.0
		if snap.TotalWeight > 0 {
			share = snap.WeightByType[top] / snap.TotalWeight * 100
		}
		insights = append(insights, fmt.Sprintf(
			"%s is your most wasted food at %s (%.1f%% of all waste)",
			top, schema.FormatGrams(snap.WeightByType[top]), share))
	}

	if len(snap.DailyTrend) > 1 {
		change, increasing := endpointChange(snap.DailyTrend)
		direction := "down"
		if increasing {
			direction = "up"
		}
		insights = append(insights, fmt.Sprintf(
			"Daily waste is %s %.1f%% over the last %d days",
			direction, math.Abs(change), len(snap.DailyTrend)))
	}

	if meal, ok := schema.HeaviestKey(snap.WeightByMeal); ok && snap.WeightByMeal[meal] > 0 {
		insights = append(insights, fmt.Sprintf(
			"%s generates the most waste (%s)", meal, schema.FormatGrams(snap.WeightByMeal[meal])))
	}

	if day, ok := schema.HeaviestKey(snap.WeightByDay); ok && snap.WeightByDay[day] > 0 {
		insights = append(insights, fmt.Sprintf(
			"%s is your heaviest waste day (%s)", day, schema.FormatGrams(snap.WeightByDay[day])))
	}

	if snap.WasteSavedTotal > 0 {
		insights = append(insights, fmt.Sprintf(
			"You wasted %s less than the prior week (down %.1f%%)",
			schema.FormatGrams(snap.WasteSavedTotal), snap.WasteSavedPercentage))
	}

	insights = append(insights, fmt.Sprintf(
		"Projected daily waste one week from now: %s", schema.FormatGrams(nextWeek)))

	insights = append(insights, outliers...)
	return insights
}

// Outliers flags weekday, meal and month averages whose z-score against
// their peers exceeds the threshold. Population standard deviation is
// used since the buckets are the whole population, not a sample.
func (l *Ledger) Outliers(threshold float64) []string {
	if threshold <= 0 {
		threshold = contract.DefaultOutlierThreshold
	}

	var flagged []string
	for _, day := range zScoreOutliers(l.WeekdayPattern(), threshold) {
		flagged = append(flagged, fmt.Sprintf(
			"%s waste is an outlier compared to your other days", day))
	}
	for _, meal := range zScoreOutliers(l.MealAveragePattern(), threshold) {
		flagged = append(flagged, fmt.Sprintf(
			"%s waste is an outlier compared to your other meals", meal))
	}
	for _, month := range zScoreOutliers(l.MonthlyPattern(), threshold) {
		flagged = append(flagged, fmt.Sprintf(
			"%s waste is an outlier compared to your other months", month))
	}
	return flagged
}

// zScoreOutliers returns keys whose value sits more than threshold
// population standard deviations from the mean, in stable key order.
func zScoreOutliers(values map[string]float64, threshold float64) []string {
	if len(values) < 2 {
		return nil
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(variance / float64(len(values)))
	if stddev < varianceEpsilon {
		return nil
	}

	var flagged []string
	for _, key := range schema.SortedKeys(values) {
		if math.Abs(values[key]-mean)/stddev > threshold {
			flagged = append(flagged, key)
		}
	}
	return flagged
}

// WeekdayPattern returns average waste per observation for each weekday,
// keyed by weekday name. All seven days are present; days without
// observations stay at zero.
func (l *Ledger) WeekdayPattern() map[string]float64 {
	averages := make(map[string]float64, 7)
	counts := make(map[string]int, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		averages[day.String()] = 0
	}

	for _, obs := range l.Entries() {
		if !obs.TimeValid {
			continue
		}
		day := obs.EventTime.Weekday().String()
		averages[day] += obs.WeightGrams
		counts[day]++
	}

	for day, count := range counts {
		if count > 0 {
			averages[day] /= float64(count)
		}
	}
	return averages
}

// MealAveragePattern returns average waste per observation for each meal.
func (l *Ledger) MealAveragePattern() map[string]float64 {
	totals := make(map[string]float64)
	counts := make(map[string]int)

	for _, obs := range l.Entries() {
		meal := string(obs.MealPeriod)
		totals[meal] += obs.WeightGrams
		counts[meal]++
	}

	averages := make(map[string]float64, len(totals))
	for meal, total := range totals {
		averages[meal] = total / float64(counts[meal])
	}
	return averages
}

// MonthlyPattern returns average waste per observation for each calendar
// month name. All twelve months are present; months without observations
// stay at zero.
func (l *Ledger) MonthlyPattern() map[string]float64 {
	averages := make(map[string]float64, 12)
	counts := make(map[string]int, 12)
	for month := time.January; month <= time.December; month++ {
		averages[month.String()] = 0
	}

	for _, obs := range l.Entries() {
		if !obs.TimeValid {
			continue
		}
		month := obs.EventTime.Month().String()
		averages[month] += obs.WeightGrams
		counts[month]++
	}

	for month, count := range counts {
		if count > 0 {
			averages[month] /= float64(count)
		}
	}
	return averages
}

// Correlations reports food types that concentrate in a single meal
// period, since those pairings are the easiest portioning fixes.
func (l *Ledger) Correlations() []string {
	byPair := make(map[string]map[string]float64)
	byFood := make(map[string]float64)

	for _, obs := range l.Entries() {
		if byPair[obs.FoodType] == nil {
			byPair[obs.FoodType] = make(map[string]float64)
		}
		byPair[obs.FoodType][string(obs.MealPeriod)] += obs.WeightGrams
		byFood[obs.FoodType] += obs.WeightGrams
	}

	var findings []string
	for _, food := range schema.SortedKeys(byFood) {
		meal, ok := schema.HeaviestKey(byPair[food])
		if !ok || byFood[food] <= 0 {
			continue
		}
		if share := byPair[food][meal] / byFood[food]; share >= 0.75 {
			findings = append(findings, fmt.Sprintf(
				"%.0f%% of %s waste happens at %s", share*100, food, meal))
		}
	}
	return findings
}

// Impact converts a period's waste into money, CO2 and water figures
// using the configured per-kilogram factors.
func (l *Ledger) Impact(period schema.TimePeriod, pricePerKg, co2PerKg, waterPerKg float64) schema.ImpactReport {
	kg := l.TotalWasteWeight(period) / 1000
	cost := kg * pricePerKg
	return schema.ImpactReport{
		WasteCost:        cost,
		PotentialSavings: cost * contract.SavingsReductionPct,
		CO2Kg:            kg * co2PerKg,
		WaterLiters:      kg * waterPerKg,
	}
}
