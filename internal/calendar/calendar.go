// Package calendar turns a year into decorated day descriptors.
// Every comparison is made on civil dates so that time-of-day, daylight
// saving and timezone offsets never change which day something falls on.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/dailybloom/internal/constants"
)

const day = 24 * time.Hour

// Clock returns the current moment
type Clock func() time.Time

// SystemClock returns a Clock reading the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// LoadLocation loads an IANA timezone. Empty or "Local" means the system zone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysIn returns the number of days in year.
func DaysIn(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// civil maps t's calendar date in its own location onto UTC midnight.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayOfYear returns the 1-based position of t within its year, counted from
// day 0 = Dec 31 of the prior year.
func DayOfYear(t time.Time) int {
	epoch := time.Date(t.Year(), time.January, 0, 0, 0, 0, 0, time.UTC)
	return int(civil(t).Sub(epoch) / day)
}

// Truncate strips the time of day from t, keeping its location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey formats t as the canonical YYYY-MM-DD key.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD key to midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// CompareDates compares the calendar dates of a and b, ignoring time of day.
// It returns -1 if a is earlier, 0 if they are the same day and +1 if later.
func CompareDates(a, b time.Time) int {
	ca, cb := civil(a), civil(b)
	switch {
	case ca.Before(cb):
		return -1
	case ca.After(cb):
		return 1
	default:
		return 0
	}
}

// Classification places a date relative to today
type Classification int

const (
	Past Classification = iota - 1
	Today
	Future
)

// Classify returns whether date is before, on or after today.
func Classify(date, today time.Time) Classification {
	return Classification(CompareDates(date, today))
}

// IsToday reports whether date and now fall on the same calendar day.
func IsToday(date, now time.Time) bool { return Classify(date, now) == Today }

// IsPast reports whether date is strictly before now's calendar day.
func IsPast(date, now time.Time) bool { return Classify(date, now) == Past }

// IsFuture reports whether date is strictly after now's calendar day.
func IsFuture(date, now time.Time) bool { return Classify(date, now) == Future }
