package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/search"
)

const snippetWidth = 60

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	input   textinput.Model
	source  calendar.EntrySource
	results []models.JournalEntry
	width   int
	height  int
}

func New(source calendar.EntrySource) Model {
	ti := textinput.New()
	ti.Placeholder = "search your garden..."
	ti.Prompt = "⌕ "
	ti.CharLimit = 100
	return Model{input: ti, source: source}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
}

// Query returns the current search term.
func (m Model) Query() string {
	return m.input.Value()
}

// Results returns the entries matching the current term, newest first.
func (m Model) Results() []models.JournalEntry {
	return m.results
}

// Refresh re-runs the query against the entry source.
func (m *Model) Refresh() {
	m.results = search.Entries(m.source.LoadAll(), m.input.Value())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.Refresh()
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	term := strings.TrimSpace(m.input.Value())
	switch {
	case term == "":
		b.WriteString(mutedStyle.Render("Type to search entries and habit notes."))
		return b.String()
	case len(m.results) == 0:
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Nothing matches %q.", term)))
		return b.String()
	}

	limit := len(m.results)
	if m.height > 4 && limit > m.height-4 {
		limit = m.height - 4
	}
	for _, e := range m.results[:limit] {
		b.WriteString(dateStyle.Render(e.Date))
		b.WriteString(" " + e.Mood.Glyph() + " ")
		b.WriteString(snippetStyle.Render(search.Snippet(e.Content, term, snippetWidth)))
		b.WriteString("\n")
	}
	if limit < len(m.results) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("... and %d more", len(m.results)-limit)))
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4
}
