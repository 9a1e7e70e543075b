package entries

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/photo"
)

type WriteCmd struct {
	Date   string   `help:"Date to write for (YYYY-MM-DD, today or yesterday)." default:"today"`
	Mood   string   `help:"Mood for the day (amazing, good, calm, neutral, tired, rough)."`
	Photo  []string `help:"Image file to attach. Repeatable." type:"existingfile"`
	Habit  []string `help:"Habit to mark done, as NAME or NAME=note. Repeatable."`
	Append bool     `help:"Append text to the existing entry instead of replacing it."`
	Text   []string `arg:"" optional:"" help:"Entry text. Read from stdin or an editor form when omitted."`
}

func (c *WriteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if calendar.IsFuture(date, ctx.Now()) {
		return fmt.Errorf("cannot write an entry for a future date: %s", calendar.DateKey(date))
	}
	key := calendar.DateKey(date)

	entry, exists := ctx.Journal.Get(key)
	if !exists {
		entry = models.JournalEntry{Date: key}
	}

	text, err := c.readText(ctx, entry.Content)
	if err != nil {
		return err
	}
	switch {
	case c.Append && strings.TrimSpace(entry.Content) != "" && text != "":
		entry.Content = strings.TrimRight(entry.Content, "\n") + "\n\n" + text
	case text != "" || !exists:
		entry.Content = text
	}

	if c.Mood != "" {
		mood, err := models.ParseMood(c.Mood)
		if err != nil {
			return err
		}
		entry.Mood = mood
	}

	for _, path := range c.Photo {
		uri, err := photo.EncodeFile(path)
		if err != nil {
			return err
		}
		entry.Photos = append(entry.Photos, uri)
	}

	if err := c.applyHabits(ctx, &entry); err != nil {
		return err
	}

	if err := ctx.Journal.Save(entry); err != nil {
		return err
	}

	verb := "Saved"
	if exists {
		verb = "Updated"
	}
	ctx.Log.Entry(key).Debug("entry written", "updated", exists)
	ctx.Printf("✓ %s entry for %s\n", verb, key)
	return nil
}

func (c *WriteCmd) readText(ctx *cli.Context, current string) (string, error) {
	if len(c.Text) > 0 {
		return strings.TrimSpace(strings.Join(c.Text, " ")), nil
	}

	if f, ok := ctx.In.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		// Nothing else was asked for, so open a form
		if len(c.Photo) > 0 || len(c.Habit) > 0 || c.Mood != "" {
			return "", nil
		}
		text := current
		if c.Append {
			text = ""
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("How was your day?").
				Value(&text),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return "", errors.New("write cancelled")
			}
			return "", err
		}
		return strings.TrimSpace(text), nil
	}

	data, err := io.ReadAll(ctx.In)
	if err != nil {
		return "", fmt.Errorf("failed to read entry text: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// applyHabits marks each --habit as completed on entry
func (c *WriteCmd) applyHabits(ctx *cli.Context, entry *models.JournalEntry) error {
	for _, spec := range c.Habit {
		name, note, _ := strings.Cut(spec, "=")
		habit, err := ctx.Habits.Find(name)
		if err != nil {
			return err
		}
		if entry.Habits == nil {
			entry.Habits = make(map[string]models.HabitLog)
		}
		entry.Habits[habit.ID] = models.HabitLog{Completed: true, Note: strings.TrimSpace(note)}
	}
	return nil
}
