package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/quotes"
	"github.com/julianstephens/dailybloom/internal/tui/components/garden"
	"github.com/julianstephens/dailybloom/internal/tui/components/habits"
)

// savedMsg marks the end of the save indicator.
type savedMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.setSize(msg.Width, msg.Height)
		return m, nil
	}

	if _, ok := msg.(savedMsg); ok {
		m.saving = false
		return m, nil
	}

	switch m.state {
	case constants.StateEditEntry:
		return m.updateEntryForm(msg)
	case constants.StateAddHabit:
		return m.updateHabitForm(msg)
	case constants.StateConfirmDelete, constants.StateConfirmClear, constants.StateConfirmDeleteHabit:
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case garden.SelectDayMsg:
		return m.openEntryForm(msg.Date)

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case habits.ToggleHabitMsg:
		m.toggleHabit(msg.ID)
		return m, nil

	case habits.DeleteHabitMsg:
		m.habitToDelete = msg
		m.previousState = m.state
		m.state = constants.StateConfirmDeleteHabit
		return m, nil

	case tea.KeyMsg:
		// The search box owns the keyboard apart from navigation.
		if m.state == constants.StateSearch {
			switch msg.String() {
			case "tab", "shift+tab", "esc", "ctrl+c":
			default:
				var cmd tea.Cmd
				m.searchModel, cmd = m.searchModel.Update(msg)
				return m, cmd
			}
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			return m, m.switchTab((int(m.state) + 1) % tabCount)
		case key.Matches(msg, m.keys.ShiftTab):
			return m, m.switchTab((int(m.state) - 1 + tabCount) % tabCount)
		case key.Matches(msg, m.keys.Back):
			if m.state == constants.StateSearch {
				return m, m.switchTab(int(constants.StateGarden))
			}
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.state {
		case constants.StateGarden, constants.StateToday:
			date := m.selectedDate()
			switch {
			case key.Matches(msg, m.keys.Edit):
				return m.openEntryForm(date)
			case key.Matches(msg, m.keys.Delete):
				if _, ok := m.ctx.Journal.Get(calendar.DateKey(date)); !ok {
					m.setStatus("No entry on "+calendar.DateKey(date), true)
					return m, nil
				}
				m.dateToDelete = calendar.DateKey(date)
				m.previousState = m.state
				m.state = constants.StateConfirmDelete
				return m, nil
			case key.Matches(msg, m.keys.Clear):
				if _, stored, _ := m.ctx.Backend.Get(constants.EntriesKey); !stored {
					m.setStatus("Journal is already empty", false)
					return m, nil
				}
				m.previousState = m.state
				m.state = constants.StateConfirmClear
				return m, nil
			case m.state == constants.StateToday && key.Matches(msg, m.keys.Quote):
				m.quote = quotes.Random(nil)
				return m, nil
			}
		}
	}

	switch m.state {
	case constants.StateGarden:
		var cmd tea.Cmd
		m.gardenModel, cmd = m.gardenModel.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateHabits:
		var cmd tea.Cmd
		m.habitsModel, cmd = m.habitsModel.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateSearch:
		var cmd tea.Cmd
		m.searchModel, cmd = m.searchModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// switchTab moves to tab i, focusing the search box when it is entered.
func (m *Model) switchTab(i int) tea.Cmd {
	if m.state == constants.StateSearch {
		m.searchModel.Blur()
	}
	m.state = constants.SessionState(i)
	m.status = ""
	if m.state == constants.StateSearch {
		return m.searchModel.Focus()
	}
	return nil
}

// selectedDate is the garden cursor on the Garden tab, otherwise today.
func (m Model) selectedDate() time.Time {
	if m.state == constants.StateGarden {
		return m.gardenModel.Cursor()
	}
	return calendar.Truncate(m.ctx.Now())
}

func (m Model) openEntryForm(date time.Time) (tea.Model, tea.Cmd) {
	if calendar.IsFuture(date, m.ctx.Now()) {
		m.setStatus("Future days cannot be written yet", true)
		return m, nil
	}
	m.editingDate = calendar.Truncate(date)
	m.entryForm = m.entryFormFor(m.editingDate)
	m.form = newEntryForm(m.entryForm, m.editingDate, m.ctx.Habits.Active())
	m.previousState = m.state
	m.state = constants.StateEditEntry
	return m, m.form.Init()
}

func (m Model) updateEntryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveEntryForm(); err != nil {
			m.ctx.Log.Entry(calendar.DateKey(m.editingDate)).Error("Failed to save entry", "error", err)
			m.setStatus(fmt.Sprintf("Failed to save: %v", err), true)
		} else {
			m.refresh()
			m.saving = true
			m.setStatus("✓ Saved "+calendar.DateKey(m.editingDate), false)
			cmds = append(cmds, tea.Tick(constants.SaveDelay, func(time.Time) tea.Msg { return savedMsg{} }))
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if _, err := m.ctx.Habits.Add(m.habitForm.Name, m.habitForm.Emoji); err != nil {
			m.setStatus(fmt.Sprintf("Failed to add habit: %v", err), true)
		} else {
			m.refresh()
			m.setStatus("✓ Added "+m.habitForm.Name, false)
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		switch m.state {
		case constants.StateConfirmDelete:
			if err := m.ctx.Journal.Remove(m.dateToDelete); err != nil {
				m.setStatus(fmt.Sprintf("Failed to delete: %v", err), true)
			} else {
				m.setStatus("✓ Deleted "+m.dateToDelete, false)
			}
		case constants.StateConfirmClear:
			m.clearJournal()
		case constants.StateConfirmDeleteHabit:
			if err := m.ctx.Habits.Delete(m.habitToDelete.ID); err != nil {
				m.setStatus(fmt.Sprintf("Failed to delete habit: %v", err), true)
			} else {
				m.setStatus("✓ Deleted habit "+m.habitToDelete.Name, false)
			}
		}
		m.refresh()
	case "n", "N", "esc":
	default:
		return m, nil
	}

	m.dateToDelete = ""
	m.habitToDelete = habits.DeleteHabitMsg{}
	m.state = m.previousState
	return m, nil
}

// clearJournal wipes every entry, but only once a backup of them exists.
func (m *Model) clearJournal() {
	path, err := m.ctx.Backups().CreateBackup()
	if err != nil {
		m.ctx.Log.Error("Backup before clear failed", "error", err)
		m.setStatus(fmt.Sprintf("Not cleared, backup failed: %v", err), true)
		return
	}
	if err := m.ctx.Journal.ClearAll(); err != nil {
		m.setStatus(fmt.Sprintf("Failed to clear: %v", err), true)
		return
	}
	m.ctx.Log.Info("Journal cleared", "backup", path)
	m.setStatus("✓ Journal cleared, backup saved", false)
}

// toggleHabit marks or unmarks habit id on today's entry. Notes survive unmarking.
func (m *Model) toggleHabit(id string) {
	entry := m.today()
	if entry == nil {
		m.setStatus("Write today's entry before marking habits", true)
		return
	}

	log, ok := entry.Habits[id]
	switch {
	case ok && log.Completed && log.Note == "":
		delete(entry.Habits, id)
	case ok && log.Completed:
		log.Completed = false
		entry.Habits[id] = log
	default:
		if entry.Habits == nil {
			entry.Habits = make(map[string]models.HabitLog)
		}
		log.Completed = true
		entry.Habits[id] = log
	}

	if err := m.ctx.Journal.Save(*entry); err != nil {
		m.setStatus(fmt.Sprintf("Failed to save: %v", err), true)
		return
	}
	m.refresh()
}
