package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kitchensight/wastetrack/schema"
)

// DateFormat is the calendar-date representation used for query boundaries
// and trend bucket labels.
const DateFormat = "2006-01-02"

// ParseObservationTime parses a wire-format timestamp. The boolean is false
// when the string does not match schema.TimestampFormat; such observations
// stay in the ledger but are excluded from calendar-bucketed views.
func ParseObservationTime(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(schema.TimestampFormat, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDate parses a "YYYY-MM-DD" boundary date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q. Expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// EndOfDay returns the last instant of the calendar day containing t.
// Query end dates are inclusive through this instant.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// DateLabel renders the calendar-date bucket key for a timestamp.
func DateLabel(t time.Time) string {
	return t.Format(DateFormat)
}

// HourLabel renders the hour bucket key for a timestamp, e.g. "13:00".
func HourLabel(t time.Time) string {
	return fmt.Sprintf("%02d:00", t.Hour())
}

// Define the regular expression to capture "N [units] ago"
// e.g., "2 weeks ago", "30 days ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// ParseRelativeTime converts strings like "2 weeks ago" into a time.Time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.Add(time.Duration(-value) * 7 * 24 * time.Hour), nil
	case "day":
		return now.Add(time.Duration(-value) * 24 * time.Hour), nil
	case "hour":
		return now.Add(time.Duration(-value) * time.Hour), nil
	case "minute":
		return now.Add(time.Duration(-value) * time.Minute), nil
	default:
		// Should be caught by the regex, but good for safety
		return time.Time{}, fmt.Errorf("unsupported time unit: %s", unit)
	}
}
