package calendar

import (
	"testing"
	"time"

	"github.com/julianstephens/dailybloom/internal/models"
)

type fakeSource map[string]models.JournalEntry

func (f fakeSource) LoadAll() map[string]models.JournalEntry { return f }

func TestDaysInYear(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	g := NewGrid(fakeSource{}, FixedClock(now))

	for _, year := range []int{2023, 2024} {
		days := g.DaysInYear(year)
		if len(days) != DaysIn(year) {
			t.Fatalf("DaysInYear(%d) returned %d days, want %d", year, len(days), DaysIn(year))
		}
		for i, d := range days {
			if d.DayOfYear != i+1 {
				t.Fatalf("day %d has DayOfYear %d", i, d.DayOfYear)
			}
			if d.Date.Year() != year {
				t.Fatalf("day %d is in year %d", i, d.Date.Year())
			}
		}
		first, last := days[0].Date, days[len(days)-1].Date
		if first.Month() != time.January || first.Day() != 1 {
			t.Errorf("first day = %s", first)
		}
		if last.Month() != time.December || last.Day() != 31 {
			t.Errorf("last day = %s", last)
		}
	}
}

func TestDaysInYearClassification(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	g := NewGrid(fakeSource{}, FixedClock(now))

	todays := 0
	for _, d := range g.DaysInYear(2024) {
		n := 0
		for _, f := range []bool{d.IsPast, d.IsToday, d.IsFuture} {
			if f {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("%s has %d classification flags", DateKey(d.Date), n)
		}
		if d.IsToday {
			todays++
			if DateKey(d.Date) != "2024-06-15" {
				t.Errorf("today flagged on %s", DateKey(d.Date))
			}
		}
	}
	if todays != 1 {
		t.Errorf("expected exactly one today, got %d", todays)
	}

	for _, d := range g.DaysInYear(2023) {
		if !d.IsPast {
			t.Fatalf("%s in a prior year should be past", DateKey(d.Date))
		}
	}
}

func TestDaysInYearDecoratesEntries(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	src := fakeSource{
		"2024-03-05": {Date: "2024-03-05", Content: "hello"},
		"2024-03-06": {Date: "2024-03-06", Photos: []string{"data:image/png;base64,AA=="}},
		"2023-03-05": {Date: "2023-03-05", Content: "other year"},
	}
	g := NewGrid(src, FixedClock(now))

	days := g.DaysInYear(2024)
	withEntry := 0
	for _, d := range days {
		if d.HasEntry {
			withEntry++
			if d.Entry == nil || d.Entry.Date != DateKey(d.Date) {
				t.Errorf("entry mismatch on %s", DateKey(d.Date))
			}
		} else if d.Entry != nil {
			t.Errorf("%s has entry without HasEntry", DateKey(d.Date))
		}
	}
	if withEntry != 2 {
		t.Errorf("expected 2 decorated days, got %d", withEntry)
	}

	mar5 := days[DayOfYear(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))-1]
	if !mar5.HasEntry || mar5.HasPhotos {
		t.Errorf("Mar 5: HasEntry=%v HasPhotos=%v", mar5.HasEntry, mar5.HasPhotos)
	}
	mar6 := days[DayOfYear(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC))-1]
	if !mar6.HasPhotos {
		t.Error("Mar 6 should have photos")
	}
}

func TestMonthsInYear(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	g := NewGrid(fakeSource{}, FixedClock(now))

	months := g.MonthsInYear(2024)
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}

	total := 0
	for i, m := range months {
		if m.Month != time.Month(i+1) {
			t.Errorf("month %d is %s", i, m.Month)
		}
		if m.Name != m.Month.String() {
			t.Errorf("month name %q", m.Name)
		}
		for _, d := range m.Days {
			if d.Date.Month() != m.Month {
				t.Errorf("%s filed under %s", DateKey(d.Date), m.Name)
			}
		}
		total += len(m.Days)
	}
	if total != 366 {
		t.Errorf("months cover %d days, want 366", total)
	}
	if len(months[1].Days) != 29 {
		t.Errorf("February 2024 has %d days", len(months[1].Days))
	}
}

func TestDay(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	src := fakeSource{"2024-06-14": {Date: "2024-06-14", Content: "yesterday"}}
	g := NewGrid(src, FixedClock(now))

	d := g.Day(time.Date(2024, 6, 14, 18, 0, 0, 0, time.UTC))
	if !d.IsPast || !d.HasEntry || d.Entry.Content != "yesterday" {
		t.Errorf("unexpected day: %+v", d)
	}
	if d.DayOfYear != 166 {
		t.Errorf("DayOfYear = %d, want 166", d.DayOfYear)
	}
	if d.Date.Hour() != 0 {
		t.Errorf("Day should be truncated to midnight, got %s", d.Date)
	}
}
