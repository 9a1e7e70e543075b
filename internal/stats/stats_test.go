package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/models"
)

type fakeSource map[string]models.JournalEntry

func (f fakeSource) LoadAll() map[string]models.JournalEntry { return f }

func entriesFor(keys ...string) fakeSource {
	src := fakeSource{}
	for _, k := range keys {
		src[k] = models.JournalEntry{Date: k, Content: "x"}
	}
	return src
}

// malformedKeys returns n keys that share the 2024- prefix but are not real dates.
func malformedKeys(n int) fakeSource {
	src := fakeSource{}
	for i := 0; i < n; i++ {
		k := fmt.Sprintf("2024-13-%03d", i)
		src[k] = models.JournalEntry{Date: k, Content: "x"}
	}
	return src
}

func TestForYear(t *testing.T) {
	now := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entries fakeSource
		want    models.Stats
	}{
		{
			name:    "five consecutive days ending today",
			entries: entriesFor("2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"),
			want:    models.Stats{Written: 5, Remaining: 361, Streak: 5},
		},
		{
			name:    "today missing falls back to yesterday",
			entries: entriesFor("2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"),
			want:    models.Stats{Written: 4, Remaining: 362, Streak: 4},
		},
		{
			name:    "gap stops the streak",
			entries: entriesFor("2024-03-01", "2024-03-02", "2024-03-05"),
			want:    models.Stats{Written: 3, Remaining: 363, Streak: 1},
		},
		{
			name:    "no recent entries",
			entries: entriesFor("2024-01-10"),
			want:    models.Stats{Written: 1, Remaining: 365, Streak: 0},
		},
		{
			name:    "empty",
			entries: fakeSource{},
			want:    models.Stats{Written: 0, Remaining: 366, Streak: 0},
		},
		{
			name:    "other years are not written this year",
			entries: entriesFor("2023-12-31", "2024-01-01"),
			want:    models.Stats{Written: 1, Remaining: 365, Streak: 0},
		},
		{
			name:    "remaining never goes negative",
			entries: malformedKeys(400),
			want:    models.Stats{Written: 400, Remaining: 0, Streak: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.entries, calendar.FixedClock(now))
			if got := svc.ForYear(2024); got != tt.want {
				t.Errorf("ForYear = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestForYearNonLeap(t *testing.T) {
	src := fakeSource{}
	for d := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC); d.Month() == time.January; d = d.AddDate(0, 0, 1) {
		src[calendar.DateKey(d)] = models.JournalEntry{Date: calendar.DateKey(d), Content: "x"}
	}
	for d := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC); d.Day() <= 10 && d.Month() == time.February; d = d.AddDate(0, 0, 1) {
		src[calendar.DateKey(d)] = models.JournalEntry{Date: calendar.DateKey(d), Content: "x"}
	}

	svc := NewService(src, calendar.FixedClock(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)))
	got := svc.ForYear(2023)
	if got.Written != 41 || got.Remaining != 324 {
		t.Errorf("ForYear(2023) = %+v", got)
	}
	if got.Written+got.Remaining != 365 {
		t.Errorf("written + remaining should equal days in year")
	}
}

func TestStreakCrossesYearBoundary(t *testing.T) {
	src := entriesFor("2023-12-30", "2023-12-31", "2024-01-01")
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	if got := Streak(src, now); got != 3 {
		t.Errorf("Streak = %d, want 3", got)
	}
}

func TestStreakUsesClockLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	src := entriesFor("2024-03-05")
	// 20:00 UTC on Mar 4 is already Mar 5 at UTC+10
	now := time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC).In(loc)

	if got := Streak(src, now); got != 1 {
		t.Errorf("Streak = %d, want 1", got)
	}
}

func TestMoods(t *testing.T) {
	src := fakeSource{
		"2024-01-01": {Date: "2024-01-01", Content: "x", Mood: models.MoodGood},
		"2024-01-02": {Date: "2024-01-02", Content: "x", Mood: models.MoodGood},
		"2024-01-03": {Date: "2024-01-03", Content: "x", Mood: models.MoodRough},
		"2024-01-04": {Date: "2024-01-04", Content: "x"},
		"2023-01-01": {Date: "2023-01-01", Content: "x", Mood: models.MoodGood},
	}
	svc := NewService(src, calendar.FixedClock(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	counts := svc.Moods(2024)
	if counts.Total != 3 {
		t.Fatalf("Total = %d, want 3", counts.Total)
	}
	if counts.Counts[models.MoodGood] != 2 || counts.Counts[models.MoodRough] != 1 {
		t.Errorf("unexpected counts: %v", counts.Counts)
	}
	if p := counts.Percent(models.MoodGood); p != 67 {
		t.Errorf("Percent(good) = %d, want 67", p)
	}
	if p := counts.Percent(models.MoodCalm); p != 0 {
		t.Errorf("Percent(calm) = %d, want 0", p)
	}
}
