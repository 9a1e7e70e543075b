package entries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/photo"
)

type ShowCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	day := ctx.Grid.Day(date)
	ctx.Printf("%s  (day %d)\n", date.Format("Monday, January 2, 2006"), day.DayOfYear)

	if !day.HasEntry {
		switch {
		case day.IsFuture:
			ctx.Println("This day has not bloomed yet.")
		default:
			ctx.Println("No entry for this day.")
		}
		return nil
	}

	printEntry(ctx, *day.Entry, habitNames(ctx))
	return nil
}

func habitNames(ctx *cli.Context) map[string]string {
	names := make(map[string]string)
	for _, h := range ctx.Habits.List() {
		names[h.ID] = h.Label()
	}
	return names
}

func printEntry(ctx *cli.Context, e models.JournalEntry, habits map[string]string) {
	if info, ok := e.Mood.Info(); ok {
		ctx.Printf("Mood: %s %s\n", info.Glyph, info.Label)
	}
	ctx.Println()
	if strings.TrimSpace(e.Content) != "" {
		ctx.Println(e.Content)
		ctx.Println()
	}

	if e.HasPhotos() {
		ctx.Printf("Photos (%d):\n", len(e.Photos))
		for i, p := range e.Photos {
			ctx.Printf("  %d. %s, %s\n", i+1, photo.MediaType(p), formatSize(len(p)))
		}
	}

	if len(e.Habits) > 0 {
		ctx.Println("Habits:")
		for id, log := range e.Habits {
			name, ok := habits[id]
			if !ok {
				name = "(deleted habit)"
			}
			mark := "○"
			if log.Completed {
				mark = "✓"
			}
			line := fmt.Sprintf("  %s %s", mark, name)
			if log.Note != "" {
				line += " - " + log.Note
			}
			ctx.Println(line)
		}
	}

	if !e.UpdatedAt.IsZero() {
		ctx.Printf("\nLast updated %s\n", e.UpdatedAt.In(ctx.Now().Location()).Format("2006-01-02 15:04"))
	}
}

func formatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024.0)
}

type DeleteCmd struct {
	Date string `arg:"" help:"Date of the entry to delete (YYYY-MM-DD, today or yesterday)."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	key := calendar.DateKey(date)

	if _, ok := ctx.Journal.Get(key); !ok {
		ctx.Printf("No entry for %s.\n", key)
		return nil
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete the entry for %s?", key))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Journal.Remove(key); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted entry for %s\n", key)
	return nil
}
