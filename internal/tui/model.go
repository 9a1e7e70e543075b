package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/quotes"
	"github.com/julianstephens/dailybloom/internal/tui/components/garden"
	"github.com/julianstephens/dailybloom/internal/tui/components/habits"
	"github.com/julianstephens/dailybloom/internal/tui/components/search"
)

// tabCount is the number of tab states; they come first in SessionState.
const tabCount = int(constants.StateSearch) + 1

var tabTitles = []string{"Garden", "Today", "Stats", "Habits", "Search"}

type EntryFormModel struct {
	Content string
	Mood    models.Mood
	Habits  []string
}

type HabitFormModel struct {
	Name  string
	Emoji string
}

type Model struct {
	ctx           *cli.Context
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	form          *huh.Form
	entryForm     *EntryFormModel
	habitForm     *HabitFormModel
	editingDate   time.Time
	gardenModel   garden.Model
	habitsModel   habits.Model
	searchModel   search.Model
	quote         quotes.Quote
	status        string
	statusIsError bool
	saving        bool
	quitting      bool
	width         int
	height        int
	dateToDelete  string
	habitToDelete habits.DeleteHabitMsg
}

func NewModel(ctx *cli.Context) Model {
	m := Model{
		ctx:         ctx,
		state:       constants.StateGarden,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		gardenModel: garden.New(ctx.Grid, 0, 0),
		habitsModel: habits.New(nil, nil, 0, 0),
		searchModel: search.New(ctx.Journal),
		quote:       quotes.ForDay(ctx.Now()),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateGarden, constants.StateToday:
		keys = append(keys, m.keys.Edit, m.keys.Delete)
	case constants.StateSearch:
		keys = []key.Binding{m.keys.Tab, m.keys.Back}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateGarden:
		g := garden.DefaultKeyMap()
		actions = []key.Binding{g.Left, g.Right, g.Up, g.Down, g.Select, g.PrevYear, g.NextYear, g.Today, m.keys.Edit, m.keys.Delete, m.keys.Clear}
	case constants.StateToday:
		actions = []key.Binding{m.keys.Edit, m.keys.Delete, m.keys.Quote}
	case constants.StateHabits:
		h := habits.DefaultKeyMap()
		actions = []key.Binding{h.Add, h.Toggle, h.Delete}
	case constants.StateSearch:
		actions = []key.Binding{m.keys.Back}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return m.gardenModel.Init()
}

// today returns the current day's entry, or nil when none has been written.
func (m Model) today() *models.JournalEntry {
	e, ok := m.ctx.Journal.Get(calendar.DateKey(m.ctx.Now()))
	if !ok {
		return nil
	}
	return &e
}

// refresh re-reads everything shown from storage.
func (m *Model) refresh() {
	m.gardenModel.Refresh()
	m.habitsModel.SetHabits(m.ctx.Habits.List(), m.today())
	m.searchModel.Refresh()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusIsError = isErr
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// Leave room for tabs, quote, status and help
	contentHeight := height - 8
	if contentHeight < 0 {
		contentHeight = 0
	}
	m.gardenModel.SetSize(width-4, contentHeight)
	m.habitsModel.SetSize(width-4, contentHeight)
	m.searchModel.SetSize(width-4, contentHeight)
}
