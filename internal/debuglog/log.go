package debuglog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff // Disables all logging
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown values map to INFO.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "OFF", "NONE":
		return LevelOff
	default:
		return LevelInfo
	}
}

// The event loop and the Bubble Tea goroutine both log, so every access to
// the shared logger goes through mu.
var (
	mu           sync.Mutex
	currentLevel = LevelOff
	logger       *log.Logger
	logFile      *os.File
)

// DefaultPath returns ~/.cinemaddict/cinemaddict.log.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cinemaddict", "cinemaddict.log")
}

// Setup configures the logging system with the specified level and optional
// file path. An empty path falls back to DefaultPath.
func Setup(level LogLevel, filePath ...string) error {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = level
	closeLocked()

	if level == LevelOff {
		return nil
	}

	logPath := DefaultPath()
	if len(filePath) > 0 && filePath[0] != "" {
		logPath = filePath[0]
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	logFile = f
	logger = log.New(f, "cinemaddict ", log.LstdFlags|log.Lmicroseconds)
	return nil
}

// SetLevel changes the current logging level
func SetLevel(level LogLevel) {
	mu.Lock()
	currentLevel = level
	mu.Unlock()
}

// GetLevel returns the current logging level
func GetLevel() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// Close closes the log file if open
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if logFile == nil {
		logger = nil
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = nil
	return err
}

func logf(level LogLevel, suffix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < currentLevel || logger == nil {
		return
	}
	logger.Printf("[%s] %s%s", level.String(), fmt.Sprintf(format, args...), suffix)
}

func Debugf(format string, args ...any) { logf(LevelDebug, "", format, args...) }
func Infof(format string, args ...any)  { logf(LevelInfo, "", format, args...) }
func Warnf(format string, args ...any)  { logf(LevelWarn, "", format, args...) }
func Errorf(format string, args ...any) { logf(LevelError, "", format, args...) }

// FieldLogger appends key=value pairs to every message.
type FieldLogger struct {
	suffix string
}

// WithFields returns a logger with the specified fields. Keys are sorted so
// lines stay greppable.
func WithFields(fields map[string]any) *FieldLogger {
	if len(fields) == 0 {
		return &FieldLogger{}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return &FieldLogger{suffix: " [" + strings.Join(parts, " ") + "]"}
}

func (fl *FieldLogger) Debugf(format string, args ...any) {
	logf(LevelDebug, fl.suffix, format, args...)
}

func (fl *FieldLogger) Infof(format string, args ...any) {
	logf(LevelInfo, fl.suffix, format, args...)
}

func (fl *FieldLogger) Warnf(format string, args ...any) {
	logf(LevelWarn, fl.suffix, format, args...)
}

func (fl *FieldLogger) Errorf(format string, args ...any) {
	logf(LevelError, fl.suffix, format, args...)
}
