package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/kv/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Source database path or connection string to copy the journal from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Backend.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized bloom storage at: %s\n", ctx.Backend.Describe())

	if c.Source != "" {
		ctx.Printf("Copying journal from: %s\n", c.Source)
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	store, ok := ctx.Backend.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	dbPath := store.Describe()

	// Don't delete if it's the source
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyFrom copies the entry and habit documents verbatim from another store.
func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	src, err := cli.OpenBackend(source, "")
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	for _, key := range []string{constants.EntriesKey, constants.HabitsKey} {
		value, ok, err := src.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !ok {
			ctx.Printf("  %s: nothing to copy\n", key)
			continue
		}
		if err := ctx.Backend.Set(key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		ctx.Printf("  %s: copied\n", key)
	}

	ctx.Printf("    Journal now holds %d entries and %d habits\n", len(ctx.Journal.LoadAll()), len(ctx.Habits.List()))
	return nil
}
