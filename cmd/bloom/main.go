package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/cli/backups"
	"github.com/julianstephens/dailybloom/internal/cli/data"
	"github.com/julianstephens/dailybloom/internal/cli/entries"
	"github.com/julianstephens/dailybloom/internal/cli/habits"
	"github.com/julianstephens/dailybloom/internal/cli/system"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/errors"
	"github.com/julianstephens/dailybloom/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring, BLOOM_DB_CONNECTION, or .pgpass instead." env:"BLOOM_DB" default:"~/.config/bloom/bloom.db"`
	Store    string `help:"Storage backend: sqlite, postgres or memory. Inferred from --config when empty."`
	Timezone string `help:"IANA timezone used to decide what 'today' is." env:"BLOOM_TZ"`
	Debug    bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize bloom storage."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive garden." default:"1"`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection stored in the OS keyring."`
	Inspect system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`

	Write  entries.WriteCmd  `cmd:"" help:"Write or update the entry for a day."`
	Show   entries.ShowCmd   `cmd:"" help:"Show the entry for a day."`
	Delete entries.DeleteCmd `cmd:"" help:"Delete the entry for a day."`
	Year   entries.YearCmd   `cmd:"" help:"Render the year as a garden of days."`
	Stats  entries.StatsCmd  `cmd:"" help:"Show written, remaining and streak counts."`
	Search entries.SearchCmd `cmd:"" help:"Search entries and habit notes."`
	Quote  entries.QuoteCmd  `cmd:"" help:"Show the quote of the day."`

	Export data.ExportCmd `cmd:"" help:"Export every entry as a JSON snapshot."`
	Import data.ImportCmd `cmd:"" help:"Merge a JSON snapshot into the journal."`
	Clear  data.ClearCmd  `cmd:"" help:"Delete every entry (a backup is taken first)."`

	Habit  habits.HabitCmd `cmd:"" help:"Manage tracked habits."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Replace the journal with a backup."`
	} `cmd:"" help:"Manage journal backups."`
}

// needsStorage reports whether command must load existing storage first.
func needsStorage(command string) bool {
	return !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "keyring")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily Bloom: one journal entry a day, grown into a year-long garden"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir, err := cli.ConfigDir(CLI.Config, CLI.Store)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := calendar.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatal(err)
	}

	backend, err := cli.OpenBackend(CLI.Config, CLI.Store)
	if err != nil {
		errors.Fatal(err)
	}
	defer backend.Close()

	// Init handles its own setup
	if needsStorage(ctx.Command()) {
		if err := backend.Load(); err != nil {
			backend.Close()
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(backend, configDir, calendar.SystemClock(loc))
	appCtx.Log.Debug("running command", "command", ctx.Command())

	if err := ctx.Run(appCtx); err != nil {
		backend.Close()
		errors.Fatal(err)
	}
}
