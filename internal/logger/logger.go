package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/dailybloom/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	// stderr only gets a copy in debug mode; the TUI owns the terminal otherwise
	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

// write sends one line to the global logger, if there is one.
func write(level log.Level, msg string, keyvals []interface{}) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...interface{}) { write(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...interface{}) { write(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...interface{}) { write(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...interface{}) { write(log.ErrorLevel, msg, keyvals) }

// Session tags every line with the store and timezone a command runs
// against. It resolves the global logger on each call, so a session made
// before Init still logs once Init has run.
type Session struct {
	fields []interface{}
}

// NewSession returns a session for the store described by store.
func NewSession(store string, loc *time.Location) *Session {
	if loc == nil {
		loc = time.Local
	}
	return &Session{fields: []interface{}{"store", store, "tz", loc.String()}}
}

// With returns a copy of s carrying extra key/value pairs.
func (s *Session) With(keyvals ...interface{}) *Session {
	fields := make([]interface{}, 0, len(s.fields)+len(keyvals))
	fields = append(fields, s.fields...)
	return &Session{fields: append(fields, keyvals...)}
}

// Entry tags the session with a journal date key.
func (s *Session) Entry(dateKey string) *Session {
	return s.With("date", dateKey)
}

func (s *Session) Debug(msg string, keyvals ...interface{}) { s.write(log.DebugLevel, msg, keyvals) }
func (s *Session) Info(msg string, keyvals ...interface{}) { s.write(log.InfoLevel, msg, keyvals) }
func (s *Session) Warn(msg string, keyvals ...interface{}) { s.write(log.WarnLevel, msg, keyvals) }
func (s *Session) Error(msg string, keyvals ...interface{}) { s.write(log.ErrorLevel, msg, keyvals) }

func (s *Session) write(level log.Level, msg string, keyvals []interface{}) {
	if s == nil {
		write(level, msg, keyvals)
		return
	}
	all := make([]interface{}, 0, len(s.fields)+len(keyvals))
	all = append(all, s.fields...)
	write(level, msg, append(all, keyvals...))
}
