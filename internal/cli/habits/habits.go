package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/storage"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit. Past entries keep their logs."`
	Mark   HabitMarkCmd   `cmd:"" help:"Toggle a habit on an existing entry."`
}

type HabitAddCmd struct {
	Name  []string `arg:"" help:"Habit name."`
	Emoji string   `help:"Emoji shown next to the habit."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(strings.Join(c.Name, " "))

	// Check if habit with same name already exists
	if _, err := ctx.Habits.Find(name); err == nil {
		return fmt.Errorf("habit with name %q already exists", name)
	}

	habit, err := ctx.Habits.Add(name, c.Emoji)
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s\n", habit.Label())
	return nil
}

type HabitListCmd struct {
	IDs bool `name:"ids" help:"Show habit IDs."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Habits.List()
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if !habit.IsActive {
			status = " [INACTIVE]"
		}
		if c.IDs {
			ctx.Printf("%s  %s%s\n", habit.ID, habit.Label(), status)
			continue
		}
		ctx.Printf("%s%s\n", habit.Label(), status)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Habits.Find(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Habits.Delete(habit.ID); err != nil {
		return err
	}

	ctx.Printf("Deleted habit: %s\n", habit.Label())
	return nil
}

type HabitMarkCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date of the entry (YYYY-MM-DD, today or yesterday)." default:"today"`
	Note  string `help:"Optional note for this day."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Habits.Find(c.Habit)
	if err != nil {
		if errors.Is(err, storage.ErrHabitNotFound) {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
		return err
	}

	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	key := calendar.DateKey(date)

	entry, ok := ctx.Journal.Get(key)
	if !ok {
		return fmt.Errorf("no entry for %s; write one first with `bloom write --date %s`", key, key)
	}

	// Toggle off unless a new note was given
	if log, marked := entry.Habits[habit.ID]; marked && log.Completed && c.Note == "" {
		delete(entry.Habits, habit.ID)
		if err := ctx.Journal.Save(entry); err != nil {
			return err
		}
		ctx.Printf("Unmarked habit %q for %s\n", habit.Name, key)
		return nil
	}

	if entry.Habits == nil {
		entry.Habits = make(map[string]models.HabitLog)
	}
	entry.Habits[habit.ID] = models.HabitLog{Completed: true, Note: strings.TrimSpace(c.Note)}
	if err := ctx.Journal.Save(entry); err != nil {
		return err
	}

	ctx.Printf("Marked habit %q for %s\n", habit.Name, key)
	return nil
}
