// Package core has core logic for the waste ledger, aggregation, trends and insights.
package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

// Ledger is the append-only store of waste observations. A single mutex
// guards the entry sequence, the dirty flag and the cached all-time
// snapshot; analytics components read through the locked accessors and
// hold no locks of their own.
type Ledger struct {
	mu          sync.Mutex
	entries     []schema.Observation
	dirty       bool
	snapshot    schema.Snapshot
	insights    []string
	subscribers []func()
	meals       contract.MealSchedule
	now         func() time.Time
}

// NewLedger creates an empty ledger using the given meal classification table.
func NewLedger(meals contract.MealSchedule) *Ledger {
	return &Ledger{
		dirty: true,
		meals: meals,
		now:   time.Now,
	}
}

// NewObservation builds an immutable observation from detector output.
// The structured event time and the meal period are computed once here,
// so downstream aggregation never re-parses the timestamp text.
func NewObservation(foodType string, weightGrams float64, timestamp string, confidence float64, imageFilename string, meals contract.MealSchedule) schema.Observation {
	eventTime, valid := contract.ParseObservationTime(timestamp)
	return schema.Observation{
		FoodType:      foodType,
		WeightGrams:   weightGrams,
		Timestamp:     timestamp,
		EventTime:     eventTime,
		TimeValid:     valid,
		Confidence:    confidence,
		MealPeriod:    meals.Classify(eventTime, valid),
		ImageFilename: imageFilename,
	}
}

// Subscribe registers a callback invoked synchronously after every
// successful append. Subscriber behavior never rolls back an append.
func (l *Ledger) Subscribe(fn func()) {
	l.mu.Lock()
	l.subscribers = append(l.subscribers, fn)
	l.mu.Unlock()
}

// Append validates and stores one observation, marks the cached snapshot
// dirty, and notifies subscribers. The only rejection is a negative weight.
func (l *Ledger) Append(obs schema.Observation) error {
	if obs.WeightGrams < 0 {
		return fmt.Errorf("observation weight cannot be negative (received %.1f)", obs.WeightGrams)
	}

	// Derive the structured time and meal period for observations built
	// outside NewObservation (e.g. rows loaded from older ledger files).
	if !obs.TimeValid && obs.EventTime.IsZero() {
		obs.EventTime, obs.TimeValid = contract.ParseObservationTime(obs.Timestamp)
	}
	if obs.MealPeriod == "" {
		obs.MealPeriod = l.meals.Classify(obs.EventTime, obs.TimeValid)
	}

	l.mu.Lock()
	l.entries = append(l.entries, obs)
	l.dirty = true
	l.insights = nil
	subscribers := make([]func(), len(l.subscribers))
	copy(subscribers, l.subscribers)
	l.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
	return nil
}

// Len returns the number of observations in the ledger.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns a copy of all observations in arrival order.
func (l *Ledger) Entries() []schema.Observation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyEntriesLocked()
}

// Query returns the ordered subsequence matching an optional food type and
// an optional inclusive date range. The end boundary is inclusive through
// the last instant of its calendar day when built with contract.EndOfDay.
// An empty result is not an error.
func (l *Ledger) Query(foodType string, start, end time.Time) []schema.Observation {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []schema.Observation
	bounded := !start.IsZero() || !end.IsZero()

	for _, obs := range l.entries {
		if foodType != "" && obs.FoodType != foodType {
			continue
		}
		if bounded {
			// Date filtering needs a parsable timestamp
			if !obs.TimeValid {
				continue
			}
			if !start.IsZero() && obs.EventTime.Before(start) {
				continue
			}
			if !end.IsZero() && obs.EventTime.After(end) {
				continue
			}
		}
		result = append(result, obs)
	}
	return result
}

// Replace swaps in a freshly loaded entry sequence, e.g. after reading the
// ledger file from disk. The cached snapshot is invalidated.
func (l *Ledger) Replace(entries []schema.Observation) {
	l.mu.Lock()
	l.entries = make([]schema.Observation, len(entries))
	copy(l.entries, entries)
	l.dirty = true
	l.insights = nil
	l.mu.Unlock()
}

// IsDirty reports whether the cached all-time snapshot is stale.
func (l *Ledger) IsDirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

// copyEntriesLocked copies the entry slice. Callers must hold the lock.
func (l *Ledger) copyEntriesLocked() []schema.Observation {
	entries := make([]schema.Observation, len(l.entries))
	copy(entries, l.entries)
	return entries
}
