package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateGarden:
		content = docStyle.Render(m.gardenModel.View())
	case constants.StateToday:
		content = m.viewToday()
	case constants.StateStats:
		content = m.viewStats()
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateSearch:
		content = docStyle.Render(m.searchModel.View())
	case constants.StateEditEntry, constants.StateAddHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirm(dangerStyle.Render(fmt.Sprintf("Delete the entry for %s?", m.dateToDelete)))
	case constants.StateConfirmClear:
		content = m.viewConfirm(
			dangerStyle.Render("Delete every journal entry?"),
			warningStyle.Render("A backup is saved first."),
		)
	case constants.StateConfirmDeleteHabit:
		content = m.viewConfirm(
			dangerStyle.Render(fmt.Sprintf("Delete habit %q?", m.habitToDelete.Name)),
			warningStyle.Render("Past logs stay on their entries."),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		quoteStyle.Render(m.quote.String()),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.saving:
		return mutedStyle.Render("Saving...")
	case m.status == "":
		return ""
	case m.statusIsError:
		return dangerStyle.Render(m.status)
	default:
		return successStyle.Render(m.status)
	}
}

func (m Model) viewConfirm(lines ...string) string {
	lines = append(lines, "", "[y] Yes", "[n] No")
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func (m Model) viewToday() string {
	now := m.ctx.Now()
	var b strings.Builder
	b.WriteString(titleStyle.Render(now.Format("Monday, January 2, 2006")))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  day %d of %d", calendar.DayOfYear(now), calendar.DaysIn(now.Year()))))
	b.WriteString("\n\n")

	entry := m.today()
	if entry == nil {
		b.WriteString(mutedStyle.Render("Nothing written yet. Press e to write today's entry."))
		return docStyle.Render(b.String())
	}

	if info, ok := entry.Mood.Info(); ok {
		b.WriteString(barStyle.Render(info.Glyph) + " " + info.Label + "\n\n")
	}
	b.WriteString(entry.Content)
	b.WriteString("\n")
	if n := len(entry.Photos); n > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("\n%d photo(s) attached\n", n)))
	}

	if habits := m.ctx.Habits.List(); len(habits) > 0 && len(entry.Habits) > 0 {
		b.WriteString("\n" + titleStyle.Render("Habits") + "\n")
		for _, h := range habits {
			log, ok := entry.Habits[h.ID]
			if !ok || !log.Completed {
				continue
			}
			b.WriteString("  ✓ " + h.Label())
			if log.Note != "" {
				b.WriteString(mutedStyle.Render(" - " + log.Note))
			}
			b.WriteString("\n")
		}
	}

	return docStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewStats() string {
	year := m.gardenModel.Year()
	s := m.ctx.Stats.ForYear(year)
	moods := m.ctx.Stats.Moods(year)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d", year)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %-10s %d\n", "Written", s.Written))
	b.WriteString(fmt.Sprintf("  %-10s %d\n", "Remaining", s.Remaining))
	b.WriteString(fmt.Sprintf("  %-10s %d day(s)\n", "Streak", s.Streak))

	b.WriteString("\n" + titleStyle.Render("Moods") + "\n")
	if moods.Total == 0 {
		b.WriteString(mutedStyle.Render("  No moods recorded this year"))
		return docStyle.Render(b.String())
	}
	for _, info := range models.Moods {
		pct := moods.Percent(info.Mood)
		bar := barStyle.Render(strings.Repeat("█", pct/5))
		b.WriteString(fmt.Sprintf("  %s %-8s %3d%% %s\n", info.Glyph, info.Label, pct, bar))
	}
	return docStyle.Render(strings.TrimRight(b.String(), "\n"))
}
