// Package snapshot exports the journal to a portable JSON document and
// imports such documents back. Imports are schema-checked up front and
// either apply in full or not at all.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/logger"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/storage"
	"github.com/julianstephens/dailybloom/internal/validation"
)

// Store is the part of the journal a snapshot reads from and restores into
type Store interface {
	LoadAll() map[string]models.JournalEntry
	Restore(entries []models.JournalEntry) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Filename returns the export file name for now's date.
func Filename(now time.Time) string {
	return constants.ExportFilePrefix + calendar.DateKey(now) + constants.ExportFileSuffix
}

// Export writes every entry to w as pretty-printed JSON keyed by date.
func (s *Service) Export(w io.Writer) error {
	entries := s.store.LoadAll()
	data, err := storage.MarshalEntries(entries, true)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logger.Info("exported entries", "count", len(entries))
	return nil
}

// Import parses r and upserts its entries. Entries already in the store
// but absent from the document are kept. On any parse problem nothing is
// written.
func (s *Service) Import(r io.Reader) (int, error) {
	entries, err := Parse(r)
	if err != nil {
		return 0, err
	}
	if err := s.store.Restore(entries); err != nil {
		return 0, fmt.Errorf("failed to import entries: %w", err)
	}
	logger.Info("imported entries", "count", len(entries))
	return len(entries), nil
}

// Parse decodes and checks a snapshot document. It returns the entries in
// date order or a *validation.ValidationError listing every problem found.
func Parse(r io.Reader) ([]models.JournalEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return nil, validation.New("$", "snapshot must be a JSON object keyed by date")
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	verr := &validation.ValidationError{}
	entries := make([]models.JournalEntry, 0, len(keys))
	for _, key := range keys {
		if e, ok := parseEntry(verr, key, doc[key]); ok {
			entries = append(entries, e)
		}
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
