package core

import (
	"fmt"
	"sort"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

// Recommendations ranks (food type, meal period) pairings by total waste
// and proposes a portioning reduction for the heaviest ones. Potential
// savings assume the standard reduction share is achievable.
func (l *Ledger) Recommendations(limit int) []schema.Recommendation {
	if limit <= 0 {
		limit = contract.DefaultRecommendations
	}

	type pairing struct {
		food string
		meal schema.MealPeriod
	}
	totals := make(map[pairing]float64)
	for _, obs := range l.Entries() {
		totals[pairing{food: obs.FoodType, meal: obs.MealPeriod}] += obs.WeightGrams
	}

	pairings := make([]pairing, 0, len(totals))
	for p := range totals {
		pairings = append(pairings, p)
	}
	sort.Slice(pairings, func(i, j int) bool {
		a, b := pairings[i], pairings[j]
		if totals[a] != totals[b] {
			return totals[a] > totals[b]
		}
		if a.food != b.food {
			return a.food < b.food
		}
		return a.meal < b.meal
	})

	if len(pairings) > limit {
		pairings = pairings[:limit]
	}

	recs := make([]schema.Recommendation, 0, len(pairings))
	for _, p := range pairings {
		current := totals[p]
		savings := current * contract.SavingsReductionPct
		recs = append(recs, schema.Recommendation{
			FoodType:         p.food,
			MealPeriod:       p.meal,
			CurrentWaste:     current,
			PotentialSavings: savings,
			Message: fmt.Sprintf(
				"Reduce %s portions at %s: you could save about %s",
				p.food, p.meal, schema.FormatGrams(savings)),
		})
	}
	return recs
}
