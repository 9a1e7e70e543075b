package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/models"
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("validation error")

// FieldError describes a problem with a single field
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidationError collects field-level problems
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation failed: %s", e.Errors[0])
	default:
		return fmt.Sprintf("validation failed: %d errors", len(e.Errors))
	}
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add records a field error.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if any field errors were recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Err returns e when it holds errors and nil otherwise.
func (e *ValidationError) Err() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// FormatReport returns a human-readable list of all field errors
func (e *ValidationError) FormatReport() string {
	if !e.HasErrors() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, fe := range e.Errors {
		fmt.Fprintf(&b, "- %s\n", fe)
	}
	return b.String()
}

// New creates a ValidationError for a single field.
func New(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// IsDateKey reports whether s is a canonical YYYY-MM-DD date.
func IsDateKey(s string) bool {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return false
	}
	return t.Format(constants.DateFormat) == s
}

// ValidateEntry checks an entry before it is written.
// Content may only be blank when at least one photo is attached.
func ValidateEntry(entry models.JournalEntry) error {
	verr := &ValidationError{}
	ValidateEntryInto(verr, "", entry)
	return verr.Err()
}

// ValidateEntryInto appends the entry's problems to verr, prefixing field names.
func ValidateEntryInto(verr *ValidationError, prefix string, entry models.JournalEntry) {
	if !IsDateKey(entry.Date) {
		verr.Add(prefix+"date", fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", entry.Date))
	}
	if strings.TrimSpace(entry.Content) == "" && len(entry.Photos) == 0 {
		verr.Add(prefix+"content", "must not be empty unless photos are attached")
	}
	if !entry.Mood.Valid() {
		verr.Add(prefix+"mood", fmt.Sprintf("unknown mood %q", entry.Mood))
	}
	for i, p := range entry.Photos {
		if !strings.HasPrefix(p, "data:") {
			verr.Add(fmt.Sprintf("%sphotos[%d]", prefix, i), "must be a data URI")
		}
	}
	for id := range entry.Habits {
		if strings.TrimSpace(id) == "" {
			verr.Add(prefix+"habits", "habit id must not be empty")
		}
	}
}

// ValidateHabitName checks a habit name before creation.
func ValidateHabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New("name", "must not be empty")
	}
	return nil
}
