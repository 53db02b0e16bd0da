package calendar

import (
	"sort"
	"time"

	"github.com/lounyevents/event-calendar-go/models"
)

// Filter narrows a list of events. Zero values keep everything: empty
// Category matches all records including uncategorized ones, empty Month
// skips the month check, zero OnDate skips the containment check.
type Filter struct {
	Category string
	Month    string // Czech month name, e.g. "Březen"
	OnDate   time.Time
}

// GroupByMonth partitions events by the YYYY-MM key of their start date and
// sorts each group ascending by start date. The sort is stable, so records
// sharing a start date keep their input order. Events whose start date does
// not parse are dropped rather than grouped under a bogus key.
func GroupByMonth(events []models.Event) map[string][]models.Event {
	grouped := make(map[string][]models.Event)
	for _, ev := range events {
		start, err := ParseLocalDateKey(ev.StartDate)
		if err != nil {
			continue
		}
		key := MonthYearKey(start)
		grouped[key] = append(grouped[key], ev)
	}
	for _, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartDate < group[j].StartDate
		})
	}
	return grouped
}

// SortedMonthKeys returns the group keys in ascending order. Lexicographic
// order on YYYY-MM is chronological order, and map iteration order must
// never leak into rendering.
func SortedMonthKeys(grouped map[string][]models.Event) []string {
	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FilterEvents applies f to events and returns the survivors in input order.
// Each criterion is an independent per-record predicate, so the application
// order does not matter.
func FilterEvents(events []models.Event, f Filter) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if f.Category != "" && ev.Category != f.Category {
			continue
		}
		if f.Month != "" && !startsInMonth(&ev, f.Month) {
			continue
		}
		if !f.OnDate.IsZero() && !OccursOn(&ev, f.OnDate) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func startsInMonth(ev *models.Event, monthName string) bool {
	start, err := ParseLocalDateKey(ev.StartDate)
	if err != nil {
		return false
	}
	return MonthName(int(start.Month())) == monthName
}

// OccursOn reports whether day falls within the event's inclusive date
// range. Multi-day events match every day from start to end; a missing end
// date means a single-day event. This is interval containment, not an
// exact-match test. Comparison happens on local calendar dates, so the time
// of day and timezone of day are irrelevant.
func OccursOn(ev *models.Event, day time.Time) bool {
	if _, err := ParseLocalDateKey(ev.StartDate); err != nil {
		return false
	}
	start := ev.StartDate
	end := ev.EffectiveEndDate()
	if _, err := ParseLocalDateKey(end); err != nil || end < start {
		// Tolerate inverted stored ranges by treating them as single-day.
		end = start
	}
	// Zero-padded YYYY-MM-DD keys order lexicographically.
	key := ToLocalDateKey(day)
	return start <= key && key <= end
}
