package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/dailybloom/internal/backup"
	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/kv"
	"github.com/julianstephens/dailybloom/internal/lock"
	"github.com/julianstephens/dailybloom/internal/logger"
	"github.com/julianstephens/dailybloom/internal/snapshot"
	"github.com/julianstephens/dailybloom/internal/stats"
	"github.com/julianstephens/dailybloom/internal/storage"
)

// Context carries the services every command runs against
type Context struct {
	Backend   kv.Backend
	Journal   *storage.Journal
	Habits    *storage.Habits
	Grid      *calendar.Grid
	Stats     *stats.Service
	Snapshots *snapshot.Service
	Clock     calendar.Clock
	ConfigDir string
	Log       *logger.Session

	Out io.Writer
	In  io.Reader
}

// NewContext wires the journal services on top of backend.
func NewContext(backend kv.Backend, configDir string, clock calendar.Clock) *Context {
	if clock == nil {
		clock = calendar.SystemClock(nil)
	}
	journal := storage.NewJournal(backend, clock)
	return &Context{
		Backend:   backend,
		Journal:   journal,
		Habits:    storage.NewHabits(backend, clock),
		Grid:      calendar.NewGrid(journal, clock),
		Stats:     stats.NewService(journal, clock),
		Snapshots: snapshot.NewService(journal),
		Clock:     clock,
		ConfigDir: configDir,
		Log:       logger.NewSession(backend.Describe(), clock().Location()),
		Out:       os.Stdout,
		In:        os.Stdin,
	}
}

// Backups returns the backup manager for this context's config directory
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.ConfigDir, c.Journal, c.Clock)
}

// Lock returns the session lockfile for this context's config directory
func (c *Context) Lock() *lock.Lock {
	return lock.New(c.ConfigDir)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		c.Log.Warn("Automatic backup failed", "error", err)
	}
}

// Now returns the current moment in the configured timezone
func (c *Context) Now() time.Time {
	return c.Clock()
}

// Today returns midnight of the current day
func (c *Context) Today() time.Time {
	return calendar.Truncate(c.Clock())
}

// ParseDate accepts YYYY-MM-DD, "today" or "yesterday". Empty means today.
func (c *Context) ParseDate(s string) (time.Time, error) {
	today := c.Today()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	date, err := calendar.ParseDateKey(strings.TrimSpace(s), today.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD, 'today' or 'yesterday')", s)
	}
	return date, nil
}

// Printf writes to the context's output
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the context's output
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on the context's input. Anything but y or
// yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
