// Package lock keeps an advisory lockfile recording the PID of a running
// interactive session so destructive commands can refuse to run beside it.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrHeld is returned when another live session holds the lock.
var ErrHeld = errors.New("another bloom session is running")

// Lock is a lockfile in a config directory
type Lock struct {
	path string
}

func New(configDir string) *Lock {
	return &Lock{path: filepath.Join(configDir, constants.LockfileName)}
}

func (l *Lock) Path() string {
	return l.path
}

// Acquire writes this process's PID to the lockfile. A lockfile left by a
// process that is no longer running is replaced.
func (l *Lock) Acquire() error {
	if pid, held := l.Holder(); held && pid != getpidFunc() {
		return fmt.Errorf("%w (pid %d)", ErrHeld, pid)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(strconv.Itoa(getpidFunc())), 0600); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	logger.Debug("acquired lock", "path", l.path)
	return nil
}

// Release removes the lockfile if this process owns it.
func (l *Lock) Release() error {
	pid, err := l.readPID()
	if err != nil || pid != getpidFunc() {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Holder reports the PID in the lockfile and whether that process is a live
// bloom session. Missing, malformed and stale lockfiles are not held.
func (l *Lock) Holder() (int, bool) {
	pid, err := l.readPID()
	if err != nil {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		logger.Debug("ignoring stale lockfile", "pid", pid)
		return pid, false
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		logger.Debug("lockfile pid belongs to another program", "pid", pid, "exe", process.Executable())
		return pid, false
	}
	return pid, true
}

// Check returns ErrHeld when a live session other than this one holds the lock.
func (l *Lock) Check() error {
	if pid, held := l.Holder(); held && pid != getpidFunc() {
		return fmt.Errorf("%w (pid %d); close it first", ErrHeld, pid)
	}
	return nil
}

func (l *Lock) readPID() (int, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, errors.New("invalid process ID in lockfile")
	}
	return pid, nil
}
