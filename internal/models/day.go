package models

import "time"

// DayInfo is a derived, read-only view of one calendar day. It is never persisted.
type DayInfo struct {
	Date      time.Time
	DayOfYear int
	IsToday   bool
	IsPast    bool
	IsFuture  bool
	HasEntry  bool
	HasPhotos bool
	Entry     *JournalEntry
}

// Month groups the days of one calendar month for grid rendering
type Month struct {
	Name  string
	Month time.Month
	Days  []DayInfo
}

// Stats summarises the journal for a year
type Stats struct {
	Written   int `json:"written"`
	Remaining int `json:"remaining"`
	Streak    int `json:"streak"`
}

// MoodCounts tallies entries per mood for a year
type MoodCounts struct {
	Counts map[Mood]int
	Total  int
}

// Percent returns the rounded share of m among all counted moods.
func (c MoodCounts) Percent(m Mood) int {
	if c.Total == 0 {
		return 0
	}
	return (c.Counts[m]*100 + c.Total/2) / c.Total
}
