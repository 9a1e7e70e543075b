package data

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/snapshot"
)

type ExportCmd struct {
	Out string `short:"o" help:"File to write. Use - for stdout. Defaults to daily-bloom-backup-<date>.json in the current directory."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if c.Out == "-" {
		return ctx.Snapshots.Export(ctx.Out)
	}

	path := c.Out
	if path == "" {
		path = snapshot.Filename(ctx.Now())
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := ctx.Snapshots.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}

	ctx.Printf("✓ Exported %d entries to %s\n", len(ctx.Journal.LoadAll()), path)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Snapshot file to merge into the journal." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	// Validate before taking a backup so a bad file leaves nothing behind
	if _, err := snapshot.Parse(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("import aborted, no entries were changed: %w", err)
	}

	ctx.PerformAutomaticBackup()
	n, err := ctx.Snapshots.Import(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	ctx.Log.Info("imported snapshot", "file", c.File, "entries", n)
	ctx.Printf("✓ Imported %d entries from %s\n", n, filepath.Base(c.File))
	return nil
}

type ClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Lock().Check(); err != nil {
		return err
	}

	_, stored, err := ctx.Backend.Get(constants.EntriesKey)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if !stored {
		ctx.Println("The journal is already empty.")
		return nil
	}

	// An unreadable document parses as empty but still needs removing
	count := len(ctx.Journal.LoadAll())
	if !c.Yes {
		if count == 0 {
			ctx.Println("⚠️  The stored journal could not be read and will be removed.")
		} else {
			ctx.Printf("⚠️  This will delete all %d journal entries.\n", count)
		}
		ctx.Println("A backup will be created first.")
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	backupPath, err := ctx.Backups().CreateBackup()
	if err != nil {
		return fmt.Errorf("refusing to clear without a backup: %w", err)
	}
	if err := ctx.Journal.ClearAll(); err != nil {
		return err
	}

	ctx.Log.Info("journal cleared", "entries", count, "backup", backupPath)
	ctx.Printf("✓ Cleared %d entries (backup: %s)\n", count, filepath.Base(backupPath))
	return nil
}
