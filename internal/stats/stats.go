// Package stats aggregates the journal into yearly summaries. Nothing is
// cached: every call re-reads the entry store.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/models"
)

// Service computes stats over an entry source
type Service struct {
	entries calendar.EntrySource
	clock   calendar.Clock
}

func NewService(entries calendar.EntrySource, clock calendar.Clock) *Service {
	if clock == nil {
		clock = calendar.SystemClock(nil)
	}
	return &Service{entries: entries, clock: clock}
}

// ForYear returns the written, remaining and streak counts for year.
func (s *Service) ForYear(year int) models.Stats {
	entries := s.entries.LoadAll()

	written := Written(entries, year)
	remaining := calendar.DaysIn(year) - written
	if remaining < 0 {
		remaining = 0
	}

	return models.Stats{
		Written:   written,
		Remaining: remaining,
		Streak:    Streak(entries, s.clock()),
	}
}

// Moods tallies the moods recorded in year. Entries without a mood are not counted.
func (s *Service) Moods(year int) models.MoodCounts {
	prefix := yearPrefix(year)
	counts := models.MoodCounts{Counts: make(map[models.Mood]int, len(models.Moods))}

	for key, e := range s.entries.LoadAll() {
		if !strings.HasPrefix(key, prefix) || e.Mood == models.MoodNone {
			continue
		}
		counts.Counts[e.Mood]++
		counts.Total++
	}
	return counts
}

func yearPrefix(year int) string {
	return fmt.Sprintf("%04d-", year)
}

// Written counts the entries whose date key lies in year.
func Written(entries map[string]models.JournalEntry, year int) int {
	prefix := yearPrefix(year)
	n := 0
	for key := range entries {
		if strings.HasPrefix(key, prefix) {
			n++
		}
	}
	return n
}

// Streak counts consecutive days with an entry ending today. When today has
// no entry yet the count starts from yesterday instead. It stops at the first
// missing day.
func Streak(entries map[string]models.JournalEntry, now time.Time) int {
	day := calendar.Truncate(now)
	if _, ok := entries[calendar.DateKey(day)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := entries[calendar.DateKey(day)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
