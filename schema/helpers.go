package schema

import (
	"fmt"
	"sort"
	"strings"
)

// RankByWeight returns the keys of a weight distribution in descending
// weight order, limited to the top 'limit' keys. Ties are broken by
// ascending key order so repeated rankings over the same data are stable.
func RankByWeight(weights map[string]float64, limit int) []string {
	keys := make([]string, 0, len(weights))
	for key := range weights {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	sort.SliceStable(keys, func(i, j int) bool {
		return weights[keys[i]] > weights[keys[j]]
	})
	if limit >= 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// HeaviestKey returns the key with the largest weight in a distribution,
// breaking ties by ascending key order. The second return is false when
// the distribution is empty.
func HeaviestKey(weights map[string]float64) (string, bool) {
	ranked := RankByWeight(weights, 1)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0], true
}

// SortedKeys returns the keys of a weight distribution in ascending order.
// Used wherever map output needs a deterministic ordering.
func SortedKeys(weights map[string]float64) []string {
	keys := make([]string, 0, len(weights))
	for key := range weights {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FormatGrams renders a gram value with one decimal place, e.g. "125.5g".
func FormatGrams(grams float64) string {
	return fmt.Sprintf("%.1fg", grams)
}

// MealPeriodOrDefault normalizes a free-form meal label to its canonical
// MealPeriod, matching case-insensitively and falling back to UnknownMeal
// for labels outside the known set.
func MealPeriodOrDefault(label string) MealPeriod {
	for period := range ValidMealPeriods {
		if strings.EqualFold(label, string(period)) {
			return period
		}
	}
	return UnknownMeal
}
