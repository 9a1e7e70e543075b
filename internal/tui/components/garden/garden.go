package garden

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/models"
)

const (
	EmptyPast   = "·"
	EmptyFuture = " "
	TodayMarker = "◎"
)

var (
	monthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(5)

	bloomStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	photoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	pastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)
)

// Glyph returns the plain symbol shown for a day in the grid.
func Glyph(day models.DayInfo) string {
	switch {
	case day.HasEntry:
		return day.Entry.Mood.Glyph()
	case day.IsToday:
		return TodayMarker
	case day.IsFuture:
		return EmptyFuture
	default:
		return EmptyPast
	}
}

func cell(day models.DayInfo, selected bool) string {
	glyph := Glyph(day)
	var style lipgloss.Style
	switch {
	case day.HasPhotos:
		style = photoStyle
	case day.HasEntry:
		style = bloomStyle
	case day.IsToday:
		style = todayStyle
	default:
		style = pastStyle
	}
	if selected {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(glyph)
}

// Render draws the year as one row per month. A nil cursor draws no selection.
func Render(months []models.Month, cursor *time.Time) string {
	var b strings.Builder
	b.WriteString(monthStyle.Render(""))
	for d := 1; d <= 31; d++ {
		if d == 1 || d%5 == 0 {
			b.WriteString(fmt.Sprintf("%-2d", d))
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, month := range months {
		b.WriteString(monthStyle.Render(month.Name[:3]))
		for _, day := range month.Days {
			selected := cursor != nil && calendar.CompareDates(day.Date, *cursor) == 0
			b.WriteString(cell(day, selected))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Legend describes the glyphs used by Render.
func Legend() string {
	parts := make([]string, 0, len(models.Moods)+2)
	for _, info := range models.Moods {
		parts = append(parts, bloomStyle.Render(info.Glyph)+" "+info.Label)
	}
	parts = append(parts, todayStyle.Render(TodayMarker)+" today", pastStyle.Render(EmptyPast)+" unwritten")
	return strings.Join(parts, "  ")
}

// SelectDayMsg is sent when the user picks a writable day.
type SelectDayMsg struct {
	Date time.Time
}

type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	PrevYear key.Binding
	NextYear key.Binding
	Today    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev month"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next month"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open day"),
		),
		PrevYear: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev year"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next year"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "jump to today"),
		),
	}
}

type Model struct {
	viewport viewport.Model
	keys     KeyMap
	grid     *calendar.Grid
	year     int
	cursor   time.Time
	months   []models.Month
	width    int
	height   int
}

func New(grid *calendar.Grid, width, height int) Model {
	today := calendar.Truncate(grid.Now())
	m := Model{
		viewport: viewport.New(width, height),
		keys:     DefaultKeyMap(),
		grid:     grid,
		year:     today.Year(),
		cursor:   today,
		width:    width,
		height:   height,
	}
	m.Refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Cursor returns the selected date.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// Year returns the displayed year.
func (m Model) Year() int {
	return m.year
}

// Refresh re-reads the grid from storage.
func (m *Model) Refresh() {
	m.months = m.grid.MonthsInYear(m.year)
	m.render()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.move(m.cursor.AddDate(0, 0, -1))
	case key.Matches(keyMsg, m.keys.Right):
		m.move(m.cursor.AddDate(0, 0, 1))
	case key.Matches(keyMsg, m.keys.Up):
		m.move(addMonths(m.cursor, -1))
	case key.Matches(keyMsg, m.keys.Down):
		m.move(addMonths(m.cursor, 1))
	case key.Matches(keyMsg, m.keys.PrevYear):
		m.move(addMonths(m.cursor, -12))
	case key.Matches(keyMsg, m.keys.NextYear):
		m.move(addMonths(m.cursor, 12))
	case key.Matches(keyMsg, m.keys.Today):
		m.move(calendar.Truncate(m.grid.Now()))
	case key.Matches(keyMsg, m.keys.Select):
		if calendar.IsFuture(m.cursor, m.grid.Now()) {
			return m, nil
		}
		date := m.cursor
		return m, func() tea.Msg { return SelectDayMsg{Date: date} }
	}
	return m, nil
}

// move places the cursor on date, clamped so it never lands on a future day.
func (m *Model) move(date time.Time) {
	today := calendar.Truncate(m.grid.Now())
	if calendar.CompareDates(date, today) > 0 {
		date = today
	}
	m.cursor = date
	if date.Year() != m.year {
		m.year = date.Year()
		m.months = m.grid.MonthsInYear(m.year)
	}
	m.render()
}

// addMonths shifts t by n months, clamping the day to the target month's length.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) render() {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d", m.year)))
	b.WriteString("\n\n")
	b.WriteString(Render(m.months, &m.cursor))
	b.WriteString("\n\n")

	day := m.grid.Day(m.cursor)
	b.WriteString(headerStyle.Render(m.cursor.Format("Mon Jan 2")))
	b.WriteString(fmt.Sprintf("  day %d", day.DayOfYear))
	if day.HasEntry {
		if info, ok := day.Entry.Mood.Info(); ok {
			b.WriteString("  " + info.Glyph + " " + info.Label)
		}
		if day.HasPhotos {
			b.WriteString(fmt.Sprintf("  %d photo(s)", len(day.Entry.Photos)))
		}
	} else {
		b.WriteString(pastStyle.Render("  no entry"))
	}
	b.WriteString("\n\n")
	b.WriteString(Legend())

	m.viewport.SetContent(b.String())
}
