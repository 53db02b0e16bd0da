package calendar

import (
	"testing"
	"time"

	"github.com/lounyevents/event-calendar-go/models"
)

func ev(title, category, startDate, endDate string) models.Event {
	return models.Event{
		Title:     title,
		Category:  category,
		StartDate: startDate,
		EndDate:   endDate,
	}
}

func TestGroupByMonth(t *testing.T) {
	events := []models.Event{
		ev("c", "Koncert", "2025-06-20", ""),
		ev("a", "Divadlo", "2025-05-01", ""),
		ev("b", "Koncert", "2025-06-03", ""),
		ev("d", "Kino", "2026-01-10", ""),
	}

	grouped := GroupByMonth(events)

	t.Run("partitions by start month", func(t *testing.T) {
		if len(grouped) != 3 {
			t.Fatalf("expected 3 groups, got %d", len(grouped))
		}
		if len(grouped["2025-06"]) != 2 {
			t.Errorf("expected 2 events in 2025-06, got %d", len(grouped["2025-06"]))
		}
	})

	t.Run("sorts within group by start date", func(t *testing.T) {
		june := grouped["2025-06"]
		if june[0].Title != "b" || june[1].Title != "c" {
			t.Errorf("expected [b c], got [%s %s]", june[0].Title, june[1].Title)
		}
	})

	t.Run("keys sort ascending", func(t *testing.T) {
		keys := SortedMonthKeys(grouped)
		want := []string{"2025-05", "2025-06", "2026-01"}
		if len(keys) != len(want) {
			t.Fatalf("expected %d keys, got %d", len(want), len(keys))
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("key %d: got %q, want %q", i, keys[i], want[i])
			}
		}
	})

	t.Run("drops unparseable start dates", func(t *testing.T) {
		g := GroupByMonth([]models.Event{ev("x", "", "not-a-date", "")})
		if len(g) != 0 {
			t.Errorf("expected no groups, got %d", len(g))
		}
	})
}

func TestGroupByMonthDeterminism(t *testing.T) {
	events := []models.Event{
		ev("a", "", "2025-06-01", ""),
		ev("b", "", "2025-06-10", ""),
		ev("c", "", "2025-06-20", ""),
		ev("d", "", "2025-07-05", ""),
	}
	reversed := make([]models.Event, len(events))
	for i, e := range events {
		reversed[len(events)-1-i] = e
	}

	g1 := GroupByMonth(events)
	g2 := GroupByMonth(reversed)

	if len(g1) != len(g2) {
		t.Fatalf("group counts differ: %d vs %d", len(g1), len(g2))
	}
	for key, group1 := range g1 {
		group2 := g2[key]
		if len(group1) != len(group2) {
			t.Fatalf("group %s sizes differ", key)
		}
		for i := range group1 {
			if group1[i].Title != group2[i].Title {
				t.Errorf("group %s position %d: %q vs %q", key, i, group1[i].Title, group2[i].Title)
			}
		}
	}
}

func TestGroupByMonthStableTies(t *testing.T) {
	events := []models.Event{
		ev("first", "", "2025-06-10", ""),
		ev("second", "", "2025-06-10", ""),
	}
	june := GroupByMonth(events)["2025-06"]
	if june[0].Title != "first" || june[1].Title != "second" {
		t.Errorf("ties must keep input order, got [%s %s]", june[0].Title, june[1].Title)
	}
}

func TestFilterEvents(t *testing.T) {
	events := []models.Event{
		ev("koncert", "Koncert", "2025-06-10", "2025-06-12"),
		ev("kino", "Kino", "2025-06-11", ""),
		ev("divadlo", "Divadlo", "2025-07-01", ""),
		ev("bez kategorie", "", "2025-06-15", ""),
	}

	t.Run("empty filter keeps everything", func(t *testing.T) {
		got := FilterEvents(events, Filter{})
		if len(got) != len(events) {
			t.Errorf("expected %d events, got %d", len(events), len(got))
		}
	})

	t.Run("category is an exact match", func(t *testing.T) {
		got := FilterEvents(events, Filter{Category: "Koncert"})
		if len(got) != 1 || got[0].Title != "koncert" {
			t.Errorf("unexpected result: %+v", got)
		}
	})

	t.Run("month filter matches start month", func(t *testing.T) {
		got := FilterEvents(events, Filter{Month: "Červen"})
		if len(got) != 3 {
			t.Errorf("expected 3 June events, got %d", len(got))
		}
		got = FilterEvents(events, Filter{Month: "Červenec"})
		if len(got) != 1 || got[0].Title != "divadlo" {
			t.Errorf("unexpected July result: %+v", got)
		}
	})

	t.Run("filters combine", func(t *testing.T) {
		got := FilterEvents(events, Filter{Category: "Kino", Month: "Červen"})
		if len(got) != 1 || got[0].Title != "kino" {
			t.Errorf("unexpected result: %+v", got)
		}
	})
}

func TestFilterEventsOnDate(t *testing.T) {
	multiDay := ev("slavnost", "Slavnosti", "2025-06-10", "2025-06-12")
	singleDay := ev("kino", "Kino", "2025-06-11", "")
	events := []models.Event{multiDay, singleDay}

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 14, 30, 0, 0, time.Local)
	}

	t.Run("closed interval containment", func(t *testing.T) {
		for _, d := range []int{10, 11, 12} {
			got := FilterEvents(events, Filter{OnDate: day(2025, time.June, d)})
			found := false
			for _, e := range got {
				if e.Title == "slavnost" {
					found = true
				}
			}
			if !found {
				t.Errorf("day %d should include the multi-day event", d)
			}
		}
	})

	t.Run("outside range excluded", func(t *testing.T) {
		got := FilterEvents(events, Filter{OnDate: day(2025, time.June, 13)})
		if len(got) != 0 {
			t.Errorf("expected nothing on June 13, got %+v", got)
		}
		got = FilterEvents(events, Filter{OnDate: day(2025, time.June, 9)})
		if len(got) != 0 {
			t.Errorf("expected nothing on June 9, got %+v", got)
		}
	})

	t.Run("missing end date means single day", func(t *testing.T) {
		got := FilterEvents(events, Filter{OnDate: day(2025, time.June, 11)})
		found := false
		for _, e := range got {
			if e.Title == "kino" {
				found = true
			}
		}
		if !found {
			t.Error("single-day event should match its start date")
		}
	})
}

func TestOccursOnInvertedRange(t *testing.T) {
	// A stored inverted range degrades to a single-day event instead of
	// matching nothing or everything.
	inverted := ev("x", "", "2025-06-10", "2025-06-05")
	if !OccursOn(&inverted, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.Local)) {
		t.Error("inverted range should still match its start date")
	}
	if OccursOn(&inverted, time.Date(2025, time.June, 7, 0, 0, 0, 0, time.Local)) {
		t.Error("inverted range should not match days inside the backwards span")
	}
}
