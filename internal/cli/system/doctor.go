package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/keyring"
	"github.com/julianstephens/dailybloom/internal/kv"
	"github.com/julianstephens/dailybloom/internal/snapshot"
)

// ErrChecksFailed is returned by doctor when at least one check fails.
var ErrChecksFailed = errors.New("one or more health checks failed")

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := false

	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}
	skip := func(name string) {
		ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", name)
	}
	warn := func(name string, err error) {
		ctx.Printf("⚠ %s: WARNING\n", name)
		ctx.Printf("   %v\n", err)
	}

	// Check 1: Storage reachable
	if err := checkStorageReachable(ctx); err != nil {
		fail("Storage reachable", err)
	} else {
		ctx.Printf("✓ Storage reachable: OK (%s)\n", ctx.Backend.Describe())
		reachable = true
	}

	// Check 2: Schema version
	if reachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fail("Schema version", err)
		} else {
			ctx.Printf("✓ Schema version: OK\n")
		}
	} else {
		skip("Schema version")
	}

	// Check 3: Entry document parses cleanly
	if reachable {
		if n, err := checkEntryDocument(ctx); err != nil {
			fail("Entry document", err)
		} else {
			ctx.Printf("✓ Entry document: OK (%d entries)\n", n)
		}
	} else {
		skip("Entry document")
	}

	// Check 4: Habit references
	if reachable {
		if err := checkHabitReferences(ctx); err != nil {
			warn("Habit references", err)
		} else {
			ctx.Printf("✓ Habit references: OK\n")
		}
	} else {
		skip("Habit references")
	}

	// Check 5: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		warn("Backups present", err)
	} else {
		ctx.Printf("✓ Backups present: OK\n")
	}

	// Check 6: Keyring (informational)
	if keyring.IsAvailable() {
		ctx.Printf("✓ OS keyring: available\n")
	} else {
		warn("OS keyring", keyring.ErrKeyringUnavailable)
	}

	// Check 7: Session lock
	if pid, held := ctx.Lock().Holder(); held {
		warn("Session lock", fmt.Errorf("a bloom session is running (pid %d); clear and restore are blocked", pid))
	} else {
		ctx.Printf("✓ Session lock: free\n")
	}

	// Check 8: Clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		now := ctx.Now()
		ctx.Printf("✓ Clock/timezone: OK (%s, %s)\n", now.Format("2006-01-02 15:04"), now.Location())
	}

	ctx.Println()
	if hasError {
		return ErrChecksFailed
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	_, _, err := ctx.Backend.Get(constants.EntriesKey)
	if errors.Is(err, kv.ErrUnavailable) {
		return fmt.Errorf("%w (run 'bloom init' first)", err)
	}
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Backend.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current != latest {
		return fmt.Errorf("schema version %d does not match expected version %d (run 'bloom init')", current, latest)
	}
	return nil
}

func checkEntryDocument(ctx *cli.Context) (int, error) {
	raw, ok, err := ctx.Backend.Get(constants.EntriesKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	entries, err := snapshot.Parse(strings.NewReader(raw))
	if err != nil {
		return 0, fmt.Errorf("stored entries do not parse; bad entries are hidden from the journal: %w", err)
	}
	return len(entries), nil
}

func checkHabitReferences(ctx *cli.Context) error {
	known := make(map[string]bool)
	for _, h := range ctx.Habits.List() {
		known[h.ID] = true
	}

	orphaned := 0
	for _, e := range ctx.Journal.LoadAll() {
		for id := range e.Habits {
			if !known[id] {
				orphaned++
			}
		}
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d habit logs referencing deleted habits", orphaned)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found (run 'bloom backup create')")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format("2006-01-02T15:04:05Z07:00"))
	}
	return nil
}
