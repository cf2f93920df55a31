package core

import (
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

// Analyzer builds labeled trend series over a ledger's observations.
type Analyzer struct {
	ledger *Ledger
}

// NewAnalyzer returns an Analyzer reading from the given ledger.
func NewAnalyzer(ledger *Ledger) *Analyzer {
	return &Analyzer{ledger: ledger}
}

// DailyTrend returns per-day totals for the trailing days window as a
// zero-filled series with change metadata.
func (a *Analyzer) DailyTrend(days int) schema.TrendSeries {
	if days <= 0 {
		days = contract.DefaultTrendDays
	}

	a.ledger.mu.Lock()
	entries := a.ledger.copyEntriesLocked()
	now := a.ledger.now()
	a.ledger.mu.Unlock()

	points := dailyTrend(entries, now, days)
	return finishSeries(points)
}

// FoodTypeTrend returns the daily series restricted to one food type.
func (a *Analyzer) FoodTypeTrend(foodType string, days int) schema.TrendSeries {
	return a.filteredTrend(days, func(obs schema.Observation) bool {
		return obs.FoodType == foodType
	})
}

// MealPeriodTrend returns the daily series restricted to one meal period.
func (a *Analyzer) MealPeriodTrend(meal schema.MealPeriod, days int) schema.TrendSeries {
	return a.filteredTrend(days, func(obs schema.Observation) bool {
		return obs.MealPeriod == meal
	})
}

func (a *Analyzer) filteredTrend(days int, keep func(schema.Observation) bool) schema.TrendSeries {
	if days <= 0 {
		days = contract.DefaultTrendDays
	}

	filtered := make([]schema.Observation, 0)
	for _, obs := range a.ledger.Entries() {
		if keep(obs) {
			filtered = append(filtered, obs)
		}
	}

	return finishSeries(sparseDailyTrend(filtered, days))
}

// sparseDailyTrend sums entries into chronological date buckets, keeping
// the most recent 'days' buckets. Unlike dailyTrend it emits only dates
// that actually have data, so filtered views stay sparse.
func sparseDailyTrend(entries []schema.Observation, days int) []schema.TrendPoint {
	totals := make(map[string]float64)
	for _, obs := range entries {
		if obs.TimeValid {
			totals[contract.DateLabel(obs.EventTime)] += obs.WeightGrams
		}
	}

	// Date labels sort lexicographically into chronological order.
	labels := schema.SortedKeys(totals)
	if len(labels) > days {
		labels = labels[len(labels)-days:]
	}

	points := make([]schema.TrendPoint, 0, len(labels))
	for _, label := range labels {
		points = append(points, schema.TrendPoint{Label: label, Weight: totals[label]})
	}
	return points
}

// finishSeries attaches endpoint-delta change metadata to a point series.
func finishSeries(points []schema.TrendPoint) schema.TrendSeries {
	series := schema.TrendSeries{Points: points}
	weights := make([]float64, len(points))
	for i, p := range points {
		weights[i] = p.Weight
	}
	series.ChangePercentage, series.Increasing = endpointChange(weights)
	return series
}

// endpointChange measures first-to-last percentage change over a series.
// A zero first value reports zero change, and the increasing flag follows
// the reported change rather than the raw endpoints.
func endpointChange(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}

	first := values[0]
	last := values[len(values)-1]
	var change float64
	if first != 0 {
		change = (last - first) / first * 100
	}
	return change, change > 0
}
