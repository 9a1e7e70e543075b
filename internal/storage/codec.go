package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/dailybloom/internal/logger"
	"github.com/julianstephens/dailybloom/internal/models"
)

// TimestampLayout is the ISO 8601 form timestamps are written in (UTC, milliseconds).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// entryRecord is the on-disk shape of a journal entry
type entryRecord struct {
	Date      string                     `json:"date"`
	Content   string                     `json:"content"`
	Mood      models.Mood                `json:"mood,omitempty"`
	Photos    []string                   `json:"photos,omitempty"`
	Habits    map[string]models.HabitLog `json:"habits,omitempty"`
	CreatedAt string                     `json:"createdAt"`
	UpdatedAt string                     `json:"updatedAt"`
}

type habitRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an RFC 3339 timestamp with or without fractional seconds.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func toRecord(e models.JournalEntry) entryRecord {
	return entryRecord{
		Date:      e.Date,
		Content:   e.Content,
		Mood:      e.Mood,
		Photos:    e.Photos,
		Habits:    e.Habits,
		CreatedAt: FormatTimestamp(e.CreatedAt),
		UpdatedAt: FormatTimestamp(e.UpdatedAt),
	}
}

func fromRecord(r entryRecord) models.JournalEntry {
	e := models.JournalEntry{
		Date:    r.Date,
		Content: r.Content,
		Mood:    r.Mood,
		Photos:  r.Photos,
		Habits:  r.Habits,
	}

	var err error
	if e.CreatedAt, err = ParseTimestamp(r.CreatedAt); err != nil {
		logger.Warn("entry has unreadable createdAt", "date", r.Date, "err", err)
	}
	if e.UpdatedAt, err = ParseTimestamp(r.UpdatedAt); err != nil {
		logger.Warn("entry has unreadable updatedAt", "date", r.Date, "err", err)
	}
	return e
}

// MarshalEntries encodes entries as the durable document. With indent the
// output is pretty-printed with two spaces.
func MarshalEntries(entries map[string]models.JournalEntry, indent bool) ([]byte, error) {
	doc := make(map[string]entryRecord, len(entries))
	for key, e := range entries {
		doc[key] = toRecord(e)
	}

	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to serialize entries: %w", err)
	}
	return data, nil
}

// unmarshalEntries decodes the durable document. A document that is not a
// JSON object yields an error; individual malformed entries are skipped.
func unmarshalEntries(data []byte) (map[string]models.JournalEntry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse entries: %w", err)
	}

	entries := make(map[string]models.JournalEntry, len(raw))
	for key, value := range raw {
		var rec entryRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			logger.Warn("skipping unreadable entry", "key", key, "err", err)
			continue
		}
		// The key is authoritative
		if rec.Date != key {
			if rec.Date != "" {
				logger.Warn("entry date does not match its key", "key", key, "date", rec.Date)
			}
			rec.Date = key
		}
		entries[key] = fromRecord(rec)
	}
	return entries, nil
}

func marshalHabits(habits []models.Habit) ([]byte, error) {
	recs := make([]habitRecord, 0, len(habits))
	for _, h := range habits {
		rec := habitRecord{ID: h.ID, Name: h.Name, Emoji: h.Emoji, IsActive: h.IsActive}
		if !h.CreatedAt.IsZero() {
			rec.CreatedAt = FormatTimestamp(h.CreatedAt)
		}
		recs = append(recs, rec)
	}

	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize habits: %w", err)
	}
	return data, nil
}

func unmarshalHabits(data []byte) ([]models.Habit, error) {
	var recs []habitRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to parse habits: %w", err)
	}

	habits := make([]models.Habit, 0, len(recs))
	for _, rec := range recs {
		h := models.Habit{ID: rec.ID, Name: rec.Name, Emoji: rec.Emoji, IsActive: rec.IsActive}
		if rec.CreatedAt != "" {
			if t, err := ParseTimestamp(rec.CreatedAt); err == nil {
				h.CreatedAt = t
			}
		}
		habits = append(habits, h)
	}
	return habits, nil
}
