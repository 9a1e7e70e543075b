package garden

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/models"
)

type fakeSource map[string]models.JournalEntry

func (f fakeSource) LoadAll() map[string]models.JournalEntry { return f }

var now = time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)

func newGrid(entries fakeSource) *calendar.Grid {
	return calendar.NewGrid(entries, calendar.FixedClock(now))
}

func TestGlyph(t *testing.T) {
	calm := &models.JournalEntry{Date: "2024-03-01", Mood: models.MoodCalm}
	plain := &models.JournalEntry{Date: "2024-03-02"}

	tests := []struct {
		name string
		day  models.DayInfo
		want string
	}{
		{"entry with mood", models.DayInfo{HasEntry: true, IsPast: true, Entry: calm}, "❦"},
		{"entry without mood", models.DayInfo{HasEntry: true, IsPast: true, Entry: plain}, "✿"},
		{"empty today", models.DayInfo{IsToday: true}, TodayMarker},
		{"empty past", models.DayInfo{IsPast: true}, EmptyPast},
		{"future", models.DayInfo{IsFuture: true}, EmptyFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Glyph(tt.day); got != tt.want {
				t.Errorf("Glyph() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	grid := newGrid(fakeSource{
		"2024-01-01": {Date: "2024-01-01", Mood: models.MoodAmazing},
	})

	out := Render(grid.MonthsInYear(2024), nil)
	lines := strings.Split(out, "\n")
	if len(lines) != 13 {
		t.Fatalf("expected header plus 12 month rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Jan") || !strings.HasPrefix(lines[12], "Dec") {
		t.Errorf("unexpected month labels: %q, %q", lines[1], lines[12])
	}
	if !strings.Contains(lines[1], "☀") {
		t.Errorf("January row should contain the amazing glyph: %q", lines[1])
	}
	if !strings.Contains(lines[3], TodayMarker) {
		t.Errorf("March row should mark today: %q", lines[3])
	}
}

func press(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationNeverReachesFuture(t *testing.T) {
	m := New(newGrid(fakeSource{}), 80, 20)

	m, _ = m.Update(press("right"))
	if got := calendar.DateKey(m.Cursor()); got != "2024-03-05" {
		t.Errorf("cursor moved past today: %s", got)
	}

	m, _ = m.Update(press("down"))
	if got := calendar.DateKey(m.Cursor()); got != "2024-03-05" {
		t.Errorf("next month should clamp to today, got %s", got)
	}

	m, _ = m.Update(press("left"))
	if got := calendar.DateKey(m.Cursor()); got != "2024-03-04" {
		t.Errorf("left = %s, want 2024-03-04", got)
	}

	m, _ = m.Update(press("["))
	if m.Year() != 2023 || calendar.DateKey(m.Cursor()) != "2023-03-04" {
		t.Errorf("prev year = %d %s", m.Year(), calendar.DateKey(m.Cursor()))
	}

	m, _ = m.Update(press("t"))
	if m.Year() != 2024 || calendar.DateKey(m.Cursor()) != "2024-03-05" {
		t.Errorf("jump to today = %d %s", m.Year(), calendar.DateKey(m.Cursor()))
	}
}

func TestSelectEmitsDay(t *testing.T) {
	m := New(newGrid(fakeSource{}), 80, 20)
	m, _ = m.Update(press("up"))

	_, cmd := m.Update(press("enter"))
	if cmd == nil {
		t.Fatal("enter on a past day should emit a command")
	}
	msg, ok := cmd().(SelectDayMsg)
	if !ok {
		t.Fatalf("unexpected message %T", cmd())
	}
	if got := calendar.DateKey(msg.Date); got != "2024-02-05" {
		t.Errorf("selected %s, want 2024-02-05", got)
	}
}

func TestAddMonthsClampsDay(t *testing.T) {
	tests := []struct {
		from string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-02-29", 12, "2025-02-28"},
		{"2024-12-15", 1, "2025-01-15"},
	}

	for _, tt := range tests {
		from, err := calendar.ParseDateKey(tt.from, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if got := calendar.DateKey(addMonths(from, tt.n)); got != tt.want {
			t.Errorf("addMonths(%s, %d) = %s, want %s", tt.from, tt.n, got, tt.want)
		}
	}
}
