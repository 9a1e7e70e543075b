package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "bloom"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/bloom/bloom.db"
	Version            = "v0.3.0"

	// DateFormat is the canonical date key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Durable store keys
	EntriesKey = "garden-journal-entries"
	HabitsKey  = "garden-journal-habits"

	// Environment variables
	EnvDB           = "BLOOM_DB"
	EnvDBConnection = "BLOOM_DB_CONNECTION"
	EnvTimezone     = "BLOOM_TZ"

	// Export constants
	ExportFilePrefix = "daily-bloom-backup-"
	ExportFileSuffix = ".json"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "bloom-"
	BackupFileSuffix = ".json"

	// Lock constants
	LockfileName = "bloom.lock"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "bloom.log"

	// Habit defaults
	DefaultHabitEmoji = "✨"

	// MaxPhotoBytes caps a single embedded photo before encoding
	MaxPhotoBytes = 5 << 20

	// SaveDelay is the pause after a save in the TUI so the change registers visually
	SaveDelay = 300 * time.Millisecond
)

// Session States
const (
	StateGarden SessionState = iota
	StateToday
	StateStats
	StateHabits
	StateSearch
	StateEditEntry
	StateAddHabit
	StateConfirmDelete
	StateConfirmClear
	StateConfirmDeleteHabit
)
