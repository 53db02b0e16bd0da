package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Czech month names, January first.
var monthNames = [12]string{
	"Leden", "Únor", "Březen", "Duben", "Květen", "Červen",
	"Červenec", "Srpen", "Září", "Říjen", "Listopad", "Prosinec",
}

// ToLocalDateKey formats t as YYYY-MM-DD using its local calendar fields.
// Going through UTC here would shift dates across midnight for evening
// picks, which is exactly the bug this function exists to avoid.
// A zero time yields an empty string.
func ToLocalDateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseLocalDateKey parses a YYYY-MM-DD key back into a local-midnight time.
func ParseLocalDateKey(key string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", key, time.Local)
}

// FormatDisplayDate renders a YYYY-MM-DD key as "DD. MM. YYYY".
// Input that does not split into exactly three parts is returned unchanged;
// an empty key yields an empty string.
func FormatDisplayDate(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return key
	}
	return fmt.Sprintf("%s. %s. %s", parts[2], parts[1], parts[0])
}

// FormatDateRange renders a start/end date-key pair for display. Single-day
// events (empty or equal end) render as the start date alone.
func FormatDateRange(startKey, endKey string) string {
	if endKey == "" || endKey == startKey {
		return FormatDisplayDate(startKey)
	}
	return FormatDisplayDate(startKey) + " - " + FormatDisplayDate(endKey)
}

// MonthYearKey returns the YYYY-MM grouping key for t.
func MonthYearKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// MonthName returns the Czech name for a 1-indexed month, or "" when out of
// range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// FormatMonthHeading renders a YYYY-MM key as a section heading: the month
// name alone within referenceYear, "Name YYYY" otherwise. Keys that do not
// look like YYYY-MM are returned unchanged.
func FormatMonthHeading(monthKey string, referenceYear int) string {
	parts := strings.Split(monthKey, "-")
	if len(parts) != 2 {
		return monthKey
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return monthKey
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || MonthName(month) == "" {
		return monthKey
	}
	if year == referenceYear {
		return MonthName(month)
	}
	return fmt.Sprintf("%s %d", MonthName(month), year)
}
