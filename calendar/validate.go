package calendar

import (
	"strings"

	"github.com/lounyevents/event-calendar-go/models"
)

// ValidateEvent checks a record before any network call and returns the
// names of missing or invalid fields, empty when the record is submittable.
// Field names match the submission form labels.
func ValidateEvent(ev *models.Event) []string {
	var missing []string

	if strings.TrimSpace(ev.Title) == "" {
		missing = append(missing, "title")
	}
	if !models.IsValidCategory(ev.Category) {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(ev.Location) == "" {
		missing = append(missing, "location")
	}
	if ev.Coordinates.IsZero() {
		// (0,0) means no suggestion was ever selected.
		missing = append(missing, "coordinates")
	}

	if ev.StartDate == "" {
		missing = append(missing, "startDate")
	} else if _, err := ParseLocalDateKey(ev.StartDate); err != nil {
		missing = append(missing, "startDate")
	}

	if ev.EndDate != "" {
		if _, err := ParseLocalDateKey(ev.EndDate); err != nil {
			missing = append(missing, "endDate")
		} else if ev.StartDate != "" && ev.EndDate < ev.StartDate {
			// Inverted ranges are rejected outright, never clamped.
			missing = append(missing, "endDate")
		}
	}

	if ev.Start != "" && !validTimeOfDay(ev.Start) {
		missing = append(missing, "start")
	}
	if ev.End != "" {
		if !validTimeOfDay(ev.End) || (ev.Start != "" && ev.End <= ev.Start) {
			missing = append(missing, "end")
		}
	}

	return missing
}

// validTimeOfDay accepts zero-padded HH:mm within a single day.
func validTimeOfDay(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hh := s[:2]
	mm := s[3:]
	for _, c := range hh + mm {
		if c < '0' || c > '9' {
			return false
		}
	}
	return hh <= "23" && mm <= "59"
}
