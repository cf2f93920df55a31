package schema

// Custom string types for type safety.
type (
	// MealPeriod represents the named window of the day an observation falls in.
	MealPeriod string

	// TimePeriod represents the aggregation window for statistics.
	TimePeriod string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the archive store.
	DatabaseBackend string
)

// All meal periods supported.
const (
	Breakfast   MealPeriod = "Breakfast"
	Lunch       MealPeriod = "Lunch"
	Dinner      MealPeriod = "Dinner"
	Snack       MealPeriod = "Snack"   // catch-all for times outside configured ranges
	UnknownMeal MealPeriod = "Unknown" // unparsable timestamp
)

// All time periods supported.
const (
	DayPeriod   TimePeriod = "day"
	WeekPeriod  TimePeriod = "week"
	MonthPeriod TimePeriod = "month"
	YearPeriod  TimePeriod = "year"
	AllTime     TimePeriod = "all" // default
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidMealPeriods lists all valid meal periods.
var ValidMealPeriods = map[MealPeriod]struct{}{
	Breakfast:   {},
	Lunch:       {},
	Dinner:      {},
	Snack:       {},
	UnknownMeal: {},
}

// ValidTimePeriods lists all valid time periods.
var ValidTimePeriods = map[TimePeriod]struct{}{
	DayPeriod:   {},
	WeekPeriod:  {},
	MonthPeriod: {},
	YearPeriod:  {},
	AllTime:     {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid archive backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// SchedulableMealPeriods are the periods that carry a configurable time range.
var SchedulableMealPeriods = []MealPeriod{Breakfast, Lunch, Dinner, Snack}

// WeekdayNames are the weekday bucket keys in calendar order.
var WeekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// MonthNames are the month bucket keys in calendar order.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// PeriodDays returns the number of days covered by a bounded time period.
// AllTime returns 0, meaning the window is unbounded.
func PeriodDays(period TimePeriod) int {
	switch period {
	case DayPeriod:
		return 1
	case WeekPeriod:
		return 7
	case MonthPeriod:
		return 30
	case YearPeriod:
		return 365
	default:
		return 0
	}
}
