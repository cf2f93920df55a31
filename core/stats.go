package core

import (
	"time"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

// dailyTrendDays is the lookback of the snapshot's recent daily series.
const dailyTrendDays = 30

// Statistics returns the snapshot for a time period. The all-time view is
// cached and recomputed only when the ledger is dirty; bounded periods are
// always recomputed over [now - window, now] and never cached.
func (l *Ledger) Statistics(period schema.TimePeriod) schema.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	if period == schema.AllTime {
		if l.dirty {
			l.snapshot = computeAllTimeSnapshot(l.entries, l.now())
			l.dirty = false
		}
		return copySnapshot(l.snapshot)
	}

	windowStart := l.now().Add(-time.Duration(schema.PeriodDays(period)) * 24 * time.Hour)
	return computeBoundedSnapshot(l.entries, windowStart)
}

// computeAllTimeSnapshot runs the one-pass aggregation over every entry.
// Entries with an unparsable timestamp count toward totals and the
// type/meal sums but are excluded from weekday, month and date buckets.
func computeAllTimeSnapshot(entries []schema.Observation, now time.Time) schema.Snapshot {
	snap := newEmptySnapshot()
	if len(entries) == 0 {
		return snap
	}

	dailyWeight := make(map[string]float64)

	for _, obs := range entries {
		snap.TotalItems++
		snap.TotalWeight += obs.WeightGrams
		snap.WeightByType[obs.FoodType] += obs.WeightGrams
		snap.CountByType[obs.FoodType]++
		snap.WeightByMeal[string(obs.MealPeriod)] += obs.WeightGrams

		if !obs.TimeValid {
			continue
		}
		snap.WeightByDay[obs.EventTime.Weekday().String()] += obs.WeightGrams
		snap.WeightByMonth[obs.EventTime.Month().String()] += obs.WeightGrams
		dailyWeight[contract.DateLabel(obs.EventTime)] += obs.WeightGrams
	}

	snap.TopFoods = schema.RankByWeight(snap.WeightByType, contract.DefaultTopFoods)

	// Recent daily series, zero-filled so every day in the window exists
	snap.DailyTrend = make([]float64, 0, dailyTrendDays)
	for i := dailyTrendDays - 1; i >= 0; i-- {
		day := now.Add(-time.Duration(i) * 24 * time.Hour)
		snap.DailyTrend = append(snap.DailyTrend, dailyWeight[contract.DateLabel(day)])
	}

	snap.WasteSavedTotal, snap.WasteSavedPercentage = weekOverWeekSavings(entries, now)
	return snap
}

// computeBoundedSnapshot aggregates the subset of entries inside a window.
// Only entries with a parsable timestamp can qualify for a bounded window.
func computeBoundedSnapshot(entries []schema.Observation, windowStart time.Time) schema.Snapshot {
	snap := newEmptySnapshot()

	for _, obs := range entries {
		if !obs.TimeValid || obs.EventTime.Before(windowStart) {
			continue
		}
		snap.TotalItems++
		snap.TotalWeight += obs.WeightGrams
		snap.WeightByType[obs.FoodType] += obs.WeightGrams
		snap.CountByType[obs.FoodType]++
		snap.WeightByMeal[string(obs.MealPeriod)] += obs.WeightGrams
	}

	snap.TopFoods = schema.RankByWeight(snap.WeightByType, contract.DefaultTopFoods)
	return snap
}

// weekOverWeekSavings compares the most recent 7 days against the prior 7.
// A zero prior week reports zero delta; negative savings clamp to zero.
func weekOverWeekSavings(entries []schema.Observation, now time.Time) (float64, float64) {
	oneWeekAgo := now.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := now.Add(-14 * 24 * time.Hour)

	var lastWeek, previousWeek float64
	for _, obs := range entries {
		if !obs.TimeValid {
			continue
		}
		switch {
		case !obs.EventTime.Before(oneWeekAgo):
			lastWeek += obs.WeightGrams
		case !obs.EventTime.Before(twoWeeksAgo):
			previousWeek += obs.WeightGrams
		}
	}

	if previousWeek <= 0 {
		return 0, 0
	}
	saved := previousWeek - lastWeek
	if saved <= 0 {
		return 0, 0
	}
	return saved, saved / previousWeek * 100
}

// TopWastedFoods returns the heaviest food types, at most limit entries.
func (l *Ledger) TopWastedFoods(limit int) []string {
	snap := l.Statistics(schema.AllTime)
	if limit >= 0 && len(snap.TopFoods) > limit {
		return snap.TopFoods[:limit]
	}
	return snap.TopFoods
}

// TotalWasteWeight returns the summed weight for a period in grams.
func (l *Ledger) TotalWasteWeight(period schema.TimePeriod) float64 {
	return l.Statistics(period).TotalWeight
}

// AverageWastePerDay returns grams wasted per day over a period. The
// all-time view divides by the span between the first and last parsable
// event, never by zero.
func (l *Ledger) AverageWastePerDay(period schema.TimePeriod) float64 {
	days := schema.PeriodDays(period)

	if days == 0 {
		var first, last time.Time
		for _, obs := range l.Entries() {
			if !obs.TimeValid {
				continue
			}
			if first.IsZero() || obs.EventTime.Before(first) {
				first = obs.EventTime
			}
			if last.IsZero() || obs.EventTime.After(last) {
				last = obs.EventTime
			}
		}
		if first.IsZero() {
			return 0
		}
		days = int(last.Sub(first)/(24*time.Hour)) + 1
		if days <= 0 {
			days = 1
		}
	}

	return l.TotalWasteWeight(period) / float64(days)
}

// WasteByType returns the weight distribution per food type for a period.
func (l *Ledger) WasteByType(period schema.TimePeriod) map[string]float64 {
	return l.Statistics(period).WeightByType
}

// WasteByMeal returns the weight distribution per meal period for a period.
func (l *Ledger) WasteByMeal(period schema.TimePeriod) map[string]float64 {
	return l.Statistics(period).WeightByMeal
}

// WasteTrend returns the zero-filled bucket series for a period: hourly
// buckets of the current day for day/week views, daily buckets otherwise.
func (l *Ledger) WasteTrend(period schema.TimePeriod) []schema.TrendPoint {
	l.mu.Lock()
	entries := l.copyEntriesLocked()
	now := l.now()
	l.mu.Unlock()

	if period == schema.DayPeriod || period == schema.WeekPeriod {
		return hourlyTrend(entries, now)
	}

	days := schema.PeriodDays(period)
	if days == 0 {
		days = 7
	}
	return dailyTrend(entries, now, days)
}

// hourlyTrend sums today's entries into 24 zero-filled "HH:00" buckets.
func hourlyTrend(entries []schema.Observation, now time.Time) []schema.TrendPoint {
	today := contract.DateLabel(now)
	totals := make(map[string]float64, 24)
	for _, obs := range entries {
		if obs.TimeValid && contract.DateLabel(obs.EventTime) == today {
			totals[contract.HourLabel(obs.EventTime)] += obs.WeightGrams
		}
	}

	points := make([]schema.TrendPoint, 0, 24)
	for hour := range 24 {
		label := contract.HourLabel(time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location()))
		points = append(points, schema.TrendPoint{Label: label, Weight: totals[label]})
	}
	return points
}

// dailyTrend sums entries into zero-filled calendar-date buckets covering
// the most recent 'days' days, oldest first.
func dailyTrend(entries []schema.Observation, now time.Time, days int) []schema.TrendPoint {
	totals := make(map[string]float64)
	for _, obs := range entries {
		if obs.TimeValid {
			totals[contract.DateLabel(obs.EventTime)] += obs.WeightGrams
		}
	}

	points := make([]schema.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		label := contract.DateLabel(now.Add(-time.Duration(i) * 24 * time.Hour))
		points = append(points, schema.TrendPoint{Label: label, Weight: totals[label]})
	}
	return points
}

// newEmptySnapshot allocates all distribution maps so callers never see nil.
func newEmptySnapshot() schema.Snapshot {
	return schema.Snapshot{
		WeightByType:  make(map[string]float64),
		CountByType:   make(map[string]int),
		WeightByMeal:  make(map[string]float64),
		WeightByDay:   make(map[string]float64),
		WeightByMonth: make(map[string]float64),
		TopFoods:      []string{},
		DailyTrend:    []float64{},
	}
}

// copySnapshot deep-copies the cached snapshot so callers cannot mutate
// the cache through the returned maps.
func copySnapshot(snap schema.Snapshot) schema.Snapshot {
	out := snap
	out.WeightByType = copyFloatMap(snap.WeightByType)
	out.CountByType = copyIntMap(snap.CountByType)
	out.WeightByMeal = copyFloatMap(snap.WeightByMeal)
	out.WeightByDay = copyFloatMap(snap.WeightByDay)
	out.WeightByMonth = copyFloatMap(snap.WeightByMonth)
	out.TopFoods = append([]string{}, snap.TopFoods...)
	out.DailyTrend = append([]float64{}, snap.DailyTrend...)
	return out
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
