package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/models"
)

// newEntryForm builds the entry editor. Habits are only offered when some are tracked.
func newEntryForm(fm *EntryFormModel, date time.Time, habits []models.Habit) *huh.Form {
	moodOptions := []huh.Option[models.Mood]{huh.NewOption("No mood", models.MoodNone)}
	for _, info := range models.Moods {
		moodOptions = append(moodOptions, huh.NewOption(info.Glyph+" "+info.Label, info.Mood))
	}

	fields := []huh.Field{
		huh.NewText().
			Title(date.Format("Monday, January 2")).
			Description("How was your day?").
			Value(&fm.Content).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("write a few words first")
				}
				return nil
			}),
		huh.NewSelect[models.Mood]().
			Title("Mood").
			Options(moodOptions...).
			Value(&fm.Mood),
	}

	if len(habits) > 0 {
		habitOptions := make([]huh.Option[string], len(habits))
		for i, h := range habits {
			habitOptions[i] = huh.NewOption(h.Label(), h.ID)
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Habits done").
			Options(habitOptions...).
			Value(&fm.Habits))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

// newHabitForm creates a new form for adding habits
func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Emoji").
				Description("Optional").
				Value(&fm.Emoji),
		),
	).WithTheme(huh.ThemeDracula())
}

// entryFormFor prefills the editor from the entry stored for date, if any.
func (m *Model) entryFormFor(date time.Time) *EntryFormModel {
	fm := &EntryFormModel{}
	if e, ok := m.ctx.Journal.Get(calendar.DateKey(date)); ok {
		fm.Content = e.Content
		fm.Mood = e.Mood
		for id, log := range e.Habits {
			if log.Completed {
				fm.Habits = append(fm.Habits, id)
			}
		}
	}
	return fm
}

// saveEntryForm merges the editor's values into the stored entry. Logs for
// habits that are not offered in the form are kept as they are.
func (m *Model) saveEntryForm() error {
	key := calendar.DateKey(m.editingDate)
	entry, ok := m.ctx.Journal.Get(key)
	if !ok {
		entry = models.JournalEntry{Date: key}
	}
	entry.Content = strings.TrimSpace(m.entryForm.Content)
	entry.Mood = m.entryForm.Mood

	selected := make(map[string]bool, len(m.entryForm.Habits))
	for _, id := range m.entryForm.Habits {
		selected[id] = true
	}
	for _, h := range m.ctx.Habits.Active() {
		if selected[h.ID] {
			if entry.Habits == nil {
				entry.Habits = make(map[string]models.HabitLog)
			}
			log := entry.Habits[h.ID]
			log.Completed = true
			entry.Habits[h.ID] = log
		} else {
			delete(entry.Habits, h.ID)
		}
	}

	return m.ctx.Journal.Save(entry)
}
