package calendar

import (
	"time"

	"github.com/julianstephens/dailybloom/internal/models"
)

// EntrySource provides the current entry store, keyed by date
type EntrySource interface {
	LoadAll() map[string]models.JournalEntry
}

// Grid builds DayInfo views for rendering. It keeps no state between calls:
// every call re-reads the entry store.
type Grid struct {
	entries EntrySource
	clock   Clock
}

func NewGrid(entries EntrySource, clock Clock) *Grid {
	if clock == nil {
		clock = SystemClock(time.Local)
	}
	return &Grid{entries: entries, clock: clock}
}

// Now returns the grid's current moment.
func (g *Grid) Now() time.Time {
	return g.clock()
}

// DaysInYear returns every day of year, Jan 1 through Dec 31.
func (g *Grid) DaysInYear(year int) []models.DayInfo {
	now := g.clock()
	entries := g.entries.LoadAll()

	days := make([]models.DayInfo, 0, DaysIn(year))
	for d := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location()); d.Year() == year; d = d.AddDate(0, 0, 1) {
		days = append(days, decorate(d, now, entries))
	}
	return days
}

// MonthsInYear returns the days of year grouped into 12 ordered months.
func (g *Grid) MonthsInYear(year int) []models.Month {
	now := g.clock()
	entries := g.entries.LoadAll()

	months := make([]models.Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		month := models.Month{Name: m.String(), Month: m}
		for d := time.Date(year, m, 1, 0, 0, 0, 0, now.Location()); d.Month() == m; d = d.AddDate(0, 0, 1) {
			month.Days = append(month.Days, decorate(d, now, entries))
		}
		months = append(months, month)
	}
	return months
}

// Day returns a single decorated day.
func (g *Grid) Day(date time.Time) models.DayInfo {
	now := g.clock()
	return decorate(Truncate(date.In(now.Location())), now, g.entries.LoadAll())
}

func decorate(date, now time.Time, entries map[string]models.JournalEntry) models.DayInfo {
	info := models.DayInfo{
		Date:      date,
		DayOfYear: DayOfYear(date),
	}

	switch Classify(date, now) {
	case Past:
		info.IsPast = true
	case Today:
		info.IsToday = true
	case Future:
		info.IsFuture = true
	}

	if entry, ok := entries[DateKey(date)]; ok {
		e := entry
		info.HasEntry = true
		info.HasPhotos = e.HasPhotos()
		info.Entry = &e
	}

	return info
}
