package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/kv"
	"github.com/julianstephens/dailybloom/internal/models"
)

func setupTestContext(t *testing.T, input string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	clock := calendar.FixedClock(time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC))
	ctx := cli.NewContext(kv.NewMemory(), t.TempDir(), clock)
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader(input)
	return ctx, out
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out := setupTestContext(t, "")

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupCreateAndRestore(t *testing.T) {
	ctx, out := setupTestContext(t, "y\n")
	if err := ctx.Journal.Save(models.JournalEntry{Date: "2024-03-01", Content: "kept"}); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	backups, err := ctx.Backups().ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected one backup, got %d (%v)", len(backups), err)
	}

	// Diverge from the backup
	if err := ctx.Journal.Save(models.JournalEntry{Date: "2024-03-04", Content: "later"}); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path)}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restored 1 entries") {
		t.Errorf("unexpected output: %q", out.String())
	}

	entries := ctx.Journal.LoadAll()
	if len(entries) != 1 || entries["2024-03-01"].Content != "kept" {
		t.Errorf("restore should replace the journal, got %+v", entries)
	}

	// The safety backup joins the original
	if backups, _ := ctx.Backups().ListBackups(); len(backups) != 2 {
		t.Errorf("expected a safety backup, have %d backups", len(backups))
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, _ := setupTestContext(t, "n\n")
	if err := ctx.Journal.Save(models.JournalEntry{Date: "2024-03-01", Content: "a"}); err != nil {
		t.Fatal(err)
	}
	path, err := ctx.Backups().CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Journal.Save(models.JournalEntry{Date: "2024-03-02", Content: "b"}); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupRestoreCmd{BackupFile: path}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Journal.LoadAll()) != 2 {
		t.Error("cancelled restore must not touch entries")
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestContext(t, "y\n")

	err := (&BackupRestoreCmd{BackupFile: "bloom-20240101-0000.json"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
