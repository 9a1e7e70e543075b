// Package backup keeps rotating JSON snapshots of the journal next to the
// database so destructive operations can be undone.
package backup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/logger"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/snapshot"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Journal is the entry store a Manager snapshots and restores
type Journal interface {
	LoadAll() map[string]models.JournalEntry
	Restore(entries []models.JournalEntry) error
	ClearAll() error
}

// Manager handles backup operations
type Manager struct {
	journal   Journal
	backupDir string
	clock     calendar.Clock
}

// NewManager creates a manager writing to <configDir>/backups
func NewManager(configDir string, journal Journal, clock calendar.Clock) *Manager {
	if clock == nil {
		clock = calendar.SystemClock(nil)
	}
	return &Manager{
		journal:   journal,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		clock:     clock,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

// CreateBackup writes a snapshot of every entry and rotates old backups
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation when taking the safety copy during a restore,
// so the file being restored cannot be rotated away underneath it.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := snapshot.NewService(m.journal).Export(&buf); err != nil {
		return "", fmt.Errorf("failed to snapshot entries: %w", err)
	}
	if err := writeFileAtomic(backupPath, buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("created backup", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("failed to rotate old backups", "err", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath uses minute precision, then seconds, then a counter until
// the name is free.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.clock()

	path := m.pathFor(now.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}

	timestamp := now.Format(secondLayout)
	path = m.pathFor(timestamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = m.pathFor(fmt.Sprintf("%s-%d", timestamp, counter))
	}
	return path, nil
}

func (m *Manager) pathFor(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

// ListBackups returns all available backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	dirEntries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	loc := m.clock().Location()
	var backups []BackupInfo
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		timestamp, ok := parseBackupName(entry.Name(), loc)
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseBackupName extracts the timestamp from bloom-YYYYMMDD-HHMM[SS][-N].json
func parseBackupName(name string, loc *time.Location) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// a trailing counter is all digits and never 4 or 6 long like a time
	parts := strings.Split(stamp, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && isDigits(last) {
			stamp = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	for _, layout := range []string{minuteLayout, secondLayout} {
		if t, err := time.ParseInLocation(layout, stamp, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= constants.MaxBackups {
		return nil
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("rotated backup", "path", backups[i].Path)
	}

	return nil
}

// ReadBackup parses and checks a backup file.
func ReadBackup(path string) ([]models.JournalEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("backup file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	entries, err := snapshot.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	return entries, nil
}

// RestoreBackup replaces every entry with the contents of backupPath. The
// current entries are backed up first; the path of that safety backup is
// returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	entries, err := ReadBackup(backupPath)
	if err != nil {
		return "", err
	}

	previous := m.journal.LoadAll()
	safetyPath, err := m.createBackup(true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current entries before restore: %w", err)
	}

	if err := m.journal.ClearAll(); err != nil {
		return safetyPath, fmt.Errorf("failed to clear entries: %w", err)
	}
	if err := m.journal.Restore(entries); err != nil {
		logger.Error("restore failed, putting previous entries back", "err", err)
		if rollbackErr := m.journal.Restore(values(previous)); rollbackErr != nil {
			logger.Error("rollback failed", "err", rollbackErr, "safety_backup", safetyPath)
		}
		return safetyPath, fmt.Errorf("failed to restore entries: %w", err)
	}

	logger.Info("restored backup", "path", backupPath, "entries", len(entries))
	return safetyPath, nil
}

func values(entries map[string]models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	return out
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeFileAtomic writes through a temporary file and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("failed to remove temporary file", "path", tempPath, "err", removeErr)
		}
		return err
	}
	return nil
}
