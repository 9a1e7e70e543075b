package models

import "time"

// HabitLog marks a habit as done on an entry's day
type HabitLog struct {
	Completed bool   `json:"completed"`
	Note      string `json:"note,omitempty"`
}

// JournalEntry is the single record kept for a calendar date
type JournalEntry struct {
	Date      string              `json:"date"` // YYYY-MM-DD format
	Content   string              `json:"content"`
	Mood      Mood                `json:"mood"`
	Photos    []string            `json:"photos,omitempty"` // data URIs
	Habits    map[string]HabitLog `json:"habits,omitempty"` // habit ID -> log
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// HasPhotos reports whether at least one photo is attached.
func (e JournalEntry) HasPhotos() bool {
	return len(e.Photos) > 0
}

// CompletedHabits returns the number of habits logged as completed.
func (e JournalEntry) CompletedHabits() int {
	n := 0
	for _, log := range e.Habits {
		if log.Completed {
			n++
		}
	}
	return n
}
