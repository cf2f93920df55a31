package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/kitchensight/wastetrack/schema"
)

// MealRange is an inclusive minute-of-day window for one meal period.
type MealRange struct {
	StartMinutes int // Minutes since midnight, inclusive
	EndMinutes   int // Minutes since midnight, inclusive
}

// mealSlot pairs a schedulable period with its configured range.
type mealSlot struct {
	period schema.MealPeriod
	window MealRange
}

// MealSchedule classifies timestamps into meal periods. Slots are checked
// in breakfast/lunch/dinner/snack order; a time matching no slot falls
// through to Snack.
type MealSchedule struct {
	slots []mealSlot
}

// DefaultMealSchedule returns the standard dining-hall schedule:
// breakfast 6:00-10:30, lunch 11:00-14:30, dinner 17:00-21:00,
// snack 21:00-23:59.
func DefaultMealSchedule() MealSchedule {
	return MealSchedule{slots: []mealSlot{
		{schema.Breakfast, MealRange{6*60 + 0, 10*60 + 30}},
		{schema.Lunch, MealRange{11*60 + 0, 14*60 + 30}},
		{schema.Dinner, MealRange{17*60 + 0, 21*60 + 0}},
		{schema.Snack, MealRange{21*60 + 0, 23*60 + 59}},
	}}
}

// mealRangeRe captures "HH:MM-HH:MM".
var mealRangeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})$`)

// ParseMealRange parses a "HH:MM-HH:MM" window into minute-of-day bounds.
func ParseMealRange(s string) (MealRange, error) {
	matches := mealRangeRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return MealRange{}, fmt.Errorf("invalid meal range %q. Expected HH:MM-HH:MM", s)
	}

	startHour, _ := strconv.Atoi(matches[1])
	startMinute, _ := strconv.Atoi(matches[2])
	endHour, _ := strconv.Atoi(matches[3])
	endMinute, _ := strconv.Atoi(matches[4])

	if startHour > 23 || endHour > 23 || startMinute > 59 || endMinute > 59 {
		return MealRange{}, fmt.Errorf("meal range %q is outside the 24-hour clock", s)
	}

	r := MealRange{
		StartMinutes: startHour*60 + startMinute,
		EndMinutes:   endHour*60 + endMinute,
	}
	if r.StartMinutes > r.EndMinutes {
		return MealRange{}, fmt.Errorf("meal range %q ends before it starts", s)
	}
	return r, nil
}

// WithRange returns a copy of the schedule with one period's window replaced.
func (ms MealSchedule) WithRange(period schema.MealPeriod, window MealRange) MealSchedule {
	slots := make([]mealSlot, len(ms.slots))
	copy(slots, ms.slots)
	for i := range slots {
		if slots[i].period == period {
			slots[i].window = window
		}
	}
	return MealSchedule{slots: slots}
}

// Range returns the configured window for a period, with ok=false for
// periods that carry no window (Unknown).
func (ms MealSchedule) Range(period schema.MealPeriod) (MealRange, bool) {
	for _, slot := range ms.slots {
		if slot.period == period {
			return slot.window, true
		}
	}
	return MealRange{}, false
}

// ClassifyMinutes maps a minute-of-day value to a meal period. Times
// outside every configured window default to Snack.
func (ms MealSchedule) ClassifyMinutes(minutes int) schema.MealPeriod {
	for _, slot := range ms.slots {
		if minutes >= slot.window.StartMinutes && minutes <= slot.window.EndMinutes {
			return slot.period
		}
	}
	return schema.Snack
}

// Classify maps a structured event time to a meal period. Invalid times
// classify as Unknown.
func (ms MealSchedule) Classify(t time.Time, valid bool) schema.MealPeriod {
	if !valid {
		return schema.UnknownMeal
	}
	return ms.ClassifyMinutes(t.Hour()*60 + t.Minute())
}
