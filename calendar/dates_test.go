package calendar

import (
	"testing"
	"time"
)

func TestLocalDateKeyRoundTrip(t *testing.T) {
	// One date per month across a leap and a non-leap year, plus the leap
	// day itself. Late-evening times catch UTC-conversion drift.
	for _, year := range []int{2024, 2025} {
		for month := 1; month <= 12; month++ {
			d := time.Date(year, time.Month(month), 15, 23, 30, 0, 0, time.Local)
			key := ToLocalDateKey(d)

			parsed, err := ParseLocalDateKey(key)
			if err != nil {
				t.Fatalf("ParseLocalDateKey(%q): %v", key, err)
			}
			if parsed.Year() != d.Year() || parsed.Month() != d.Month() || parsed.Day() != d.Day() {
				t.Errorf("round trip %q: got %d-%d-%d, want %d-%d-%d",
					key, parsed.Year(), parsed.Month(), parsed.Day(), d.Year(), d.Month(), d.Day())
			}
		}
	}

	leapDay := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local)
	if got := ToLocalDateKey(leapDay); got != "2024-02-29" {
		t.Errorf("leap day: got %q, want %q", got, "2024-02-29")
	}
}

func TestToLocalDateKey(t *testing.T) {
	if got := ToLocalDateKey(time.Time{}); got != "" {
		t.Errorf("zero time: got %q, want empty", got)
	}
	d := time.Date(2025, time.January, 5, 18, 0, 0, 0, time.Local)
	if got := ToLocalDateKey(d); got != "2025-01-05" {
		t.Errorf("got %q, want %q", got, "2025-01-05")
	}
}

func TestFormatDisplayDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-01-05", "05. 01. 2025"},
		{"2024-12-31", "31. 12. 2024"},
		{"", ""},
		{"not-a-date-at-all", "not-a-date-at-all"},
		{"2025-01", "2025-01"},
	}
	for _, tt := range tests {
		if got := FormatDisplayDate(tt.in); got != tt.want {
			t.Errorf("FormatDisplayDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDateRange(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		if got := FormatDateRange("2025-06-10", ""); got != "10. 06. 2025" {
			t.Errorf("got %q", got)
		}
		if got := FormatDateRange("2025-06-10", "2025-06-10"); got != "10. 06. 2025" {
			t.Errorf("equal end: got %q", got)
		}
	})

	t.Run("multi day", func(t *testing.T) {
		got := FormatDateRange("2025-06-10", "2025-06-12")
		want := "10. 06. 2025 - 12. 06. 2025"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestMonthYearKey(t *testing.T) {
	d := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	if got := MonthYearKey(d); got != "2025-03" {
		t.Errorf("got %q, want %q", got, "2025-03")
	}
}

func TestFormatMonthHeading(t *testing.T) {
	tests := []struct {
		key           string
		referenceYear int
		want          string
	}{
		{"2025-03", 2025, "Březen"},
		{"2024-03", 2025, "Březen 2024"},
		{"2025-01", 2025, "Leden"},
		{"2026-12", 2025, "Prosinec 2026"},
		{"garbage", 2025, "garbage"},
		{"2025-13", 2025, "2025-13"},
	}
	for _, tt := range tests {
		if got := FormatMonthHeading(tt.key, tt.referenceYear); got != tt.want {
			t.Errorf("FormatMonthHeading(%q, %d) = %q, want %q", tt.key, tt.referenceYear, got, tt.want)
		}
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(3); got != "Březen" {
		t.Errorf("got %q", got)
	}
	if got := MonthName(0); got != "" {
		t.Errorf("out of range low: got %q", got)
	}
	if got := MonthName(13); got != "" {
		t.Errorf("out of range high: got %q", got)
	}
}
