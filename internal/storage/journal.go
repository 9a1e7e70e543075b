// Package storage is the persistence gateway for journal entries and habits.
// Both are kept as whole JSON documents under fixed keys of a kv.Store and
// every write replaces the full document.
package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/kv"
	"github.com/julianstephens/dailybloom/internal/logger"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/validation"
)

// Journal reads and writes the entry document
type Journal struct {
	store kv.Store
	clock calendar.Clock
	key   string
}

var _ calendar.EntrySource = (*Journal)(nil)

func NewJournal(store kv.Store, clock calendar.Clock) *Journal {
	if clock == nil {
		clock = calendar.SystemClock(nil)
	}
	return &Journal{store: store, clock: clock, key: constants.EntriesKey}
}

// load reads the document. kv.ErrUnavailable is passed through unwrapped so
// callers can degrade; a corrupt document reads as empty.
func (j *Journal) load() (map[string]models.JournalEntry, error) {
	data, ok, err := j.store.Get(j.key)
	if err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			return map[string]models.JournalEntry{}, err
		}
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	if !ok {
		return map[string]models.JournalEntry{}, nil
	}

	entries, err := unmarshalEntries([]byte(data))
	if err != nil {
		logger.Warn("entry store is corrupt, treating as empty", "err", err)
		return map[string]models.JournalEntry{}, nil
	}
	return entries, nil
}

func (j *Journal) write(entries map[string]models.JournalEntry) error {
	data, err := MarshalEntries(entries, false)
	if err != nil {
		return err
	}
	if err := j.store.Set(j.key, string(data)); err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			logger.Debug("storage unavailable, dropping write", "key", j.key)
			return nil
		}
		return fmt.Errorf("failed to write entries: %w", err)
	}
	return nil
}

// LoadAll returns every stored entry keyed by date. It never fails: a
// missing, unreadable or unavailable store yields an empty map.
func (j *Journal) LoadAll() map[string]models.JournalEntry {
	entries, err := j.load()
	if err != nil {
		if !errors.Is(err, kv.ErrUnavailable) {
			logger.Warn("failed to load entries", "err", err)
		}
		return map[string]models.JournalEntry{}
	}
	return entries
}

// Get returns the entry for a date key.
func (j *Journal) Get(dateKey string) (models.JournalEntry, bool) {
	e, ok := j.LoadAll()[dateKey]
	return e, ok
}

// Save validates and upserts entry. An existing entry keeps its CreatedAt;
// UpdatedAt is always refreshed.
func (j *Journal) Save(entry models.JournalEntry) error {
	if err := validation.ValidateEntry(entry); err != nil {
		return err
	}

	entries, err := j.load()
	if err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			logger.Debug("storage unavailable, dropping save", "date", entry.Date)
			return nil
		}
		return err
	}

	now := j.clock()
	if existing, ok := entries[entry.Date]; ok && !existing.CreatedAt.IsZero() {
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	if len(entry.Habits) == 0 {
		entry.Habits = nil
	}

	entries[entry.Date] = entry
	return j.write(entries)
}

// Remove deletes the entry for dateKey. Removing an absent entry is a no-op.
func (j *Journal) Remove(dateKey string) error {
	entries, err := j.load()
	if err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			return nil
		}
		return err
	}
	if _, ok := entries[dateKey]; !ok {
		return nil
	}

	delete(entries, dateKey)
	return j.write(entries)
}

// ClearAll removes the whole entry document.
func (j *Journal) ClearAll() error {
	if err := j.store.Delete(j.key); err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			return nil
		}
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	logger.Info("cleared all entries")
	return nil
}

// Restore upserts entries verbatim in a single write. Timestamps are kept as
// given and keys not present in entries are left untouched.
func (j *Journal) Restore(entries []models.JournalEntry) error {
	current, err := j.load()
	if err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			return nil
		}
		return err
	}

	for _, e := range entries {
		current[e.Date] = e
	}
	return j.write(current)
}
