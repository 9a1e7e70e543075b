package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/storage"
	"github.com/julianstephens/dailybloom/internal/validation"
)

// parseEntry checks one document value field by field, recording every
// problem under "<key>.<field>".
func parseEntry(verr *validation.ValidationError, key string, raw json.RawMessage) (models.JournalEntry, bool) {
	before := len(verr.Errors)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		verr.Add(key, "entry must be a JSON object")
		return models.JournalEntry{}, false
	}

	field := func(name string) string { return key + "." + name }
	var e models.JournalEntry

	if decodeRequired(verr, fields, "date", field("date"), &e.Date) {
		switch {
		case !validation.IsDateKey(e.Date):
			verr.Add(field("date"), fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", e.Date))
		case e.Date != key:
			verr.Add(field("date"), fmt.Sprintf("date %q does not match its key", e.Date))
		}
	}

	decodeRequired(verr, fields, "content", field("content"), &e.Content)

	if decodeOptional(verr, fields, "mood", field("mood"), &e.Mood) && !e.Mood.Valid() {
		verr.Add(field("mood"), fmt.Sprintf("unknown mood %q", e.Mood))
	}

	decodeOptional(verr, fields, "photos", field("photos"), &e.Photos)
	decodeOptional(verr, fields, "habits", field("habits"), &e.Habits)

	e.CreatedAt = decodeTimestamp(verr, fields, "createdAt", field("createdAt"))
	e.UpdatedAt = decodeTimestamp(verr, fields, "updatedAt", field("updatedAt"))

	// Well-typed entries must still be ones Save would accept
	if len(verr.Errors) == before {
		validation.ValidateEntryInto(verr, key+".", e)
	}
	return e, len(verr.Errors) == before
}

// decodeRequired decodes fields[name] into dst, recording a problem when the
// field is missing, null or of the wrong type.
func decodeRequired(verr *validation.ValidationError, fields map[string]json.RawMessage, name, path string, dst any) bool {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		verr.Add(path, "is required")
		return false
	}
	return decodeInto(verr, raw, path, dst)
}

// decodeOptional is decodeRequired for fields that may be absent or null.
// It reports whether a value was decoded.
func decodeOptional(verr *validation.ValidationError, fields map[string]json.RawMessage, name, path string, dst any) bool {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return false
	}
	return decodeInto(verr, raw, path, dst)
}

func decodeInto(verr *validation.ValidationError, raw json.RawMessage, path string, dst any) bool {
	if err := json.Unmarshal(raw, dst); err != nil {
		verr.Add(path, fmt.Sprintf("has the wrong type: %s", typeHint(dst)))
		return false
	}
	return true
}

func decodeTimestamp(verr *validation.ValidationError, fields map[string]json.RawMessage, name, path string) time.Time {
	var s string
	if !decodeRequired(verr, fields, name, path, &s) {
		return time.Time{}
	}
	t, err := storage.ParseTimestamp(s)
	if err != nil {
		verr.Add(path, fmt.Sprintf("invalid timestamp %q", s))
		return time.Time{}
	}
	return t
}

func typeHint(dst any) string {
	switch dst.(type) {
	case *string, *models.Mood:
		return "expected a string"
	case *[]string:
		return "expected an array of strings"
	case *map[string]models.HabitLog:
		return "expected an object of habit logs"
	default:
		return "unexpected value"
	}
}
