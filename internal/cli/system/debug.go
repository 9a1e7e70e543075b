package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/storage"
)

type DebugCmd struct {
	DBPath     *DebugDBPathCmd     `cmd:"" help:"Show storage location and config directory."`
	DumpEntry  *DebugDumpEntryCmd  `cmd:"" help:"Dump an entry in its stored form as JSON."`
	DumpHabits *DebugDumpHabitsCmd `cmd:"" help:"Dump the habit list as JSON."`
	DumpDay    *DebugDumpDayCmd    `cmd:"" help:"Dump the derived day view as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"storage":   ctx.Backend.Describe(),
		"configDir": ctx.ConfigDir,
		"backupDir": ctx.Backups().GetBackupDir(),
		"lockfile":  ctx.Lock().Path(),
	}
	return printJSON(ctx, output)
}

type DebugDumpEntryCmd struct {
	Date string `arg:"" help:"Date of the entry to dump (YYYY-MM-DD, today or yesterday)."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(cmd.Date)
	if err != nil {
		return err
	}
	key := calendar.DateKey(date)

	entry, ok := ctx.Journal.Get(key)
	if !ok {
		return fmt.Errorf("no entry found for date: %s", key)
	}

	data, err := storage.MarshalEntries(map[string]models.JournalEntry{key: entry}, true)
	if err != nil {
		return err
	}
	ctx.Println(string(data))
	return nil
}

type DebugDumpHabitsCmd struct{}

func (cmd *DebugDumpHabitsCmd) Run(ctx *cli.Context) error {
	habits := ctx.Habits.List()
	if habits == nil {
		habits = []models.Habit{}
	}
	return printJSON(ctx, habits)
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Date to inspect (YYYY-MM-DD, today or yesterday)."`
}

type dayOutput struct {
	Date      string `json:"date"`
	DayOfYear int    `json:"dayOfYear"`
	IsToday   bool   `json:"isToday"`
	IsPast    bool   `json:"isPast"`
	IsFuture  bool   `json:"isFuture"`
	HasEntry  bool   `json:"hasEntry"`
	HasPhotos bool   `json:"hasPhotos"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(cmd.Date)
	if err != nil {
		return err
	}
	day := ctx.Grid.Day(date)
	return printJSON(ctx, dayOutput{
		Date:      calendar.DateKey(day.Date),
		DayOfYear: day.DayOfYear,
		IsToday:   day.IsToday,
		IsPast:    day.IsPast,
		IsFuture:  day.IsFuture,
		HasEntry:  day.HasEntry,
		HasPhotos: day.HasPhotos,
	})
}

func printJSON(ctx *cli.Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
