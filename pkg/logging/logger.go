package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger provides structured diagnostic logging for notesbridge components.
// Every record is a single line (JSON by default) carrying the level, message,
// timestamp, component name and session ID. Records go to stderr unless a
// different writer is configured, because stdout belongs to the MCP transport.
type Logger struct {
	zl        zerolog.Logger
	component string
	sessionID string
	file      *os.File
	logPath   string
	closeOnce sync.Once
}

// Options controls where and how a Logger writes.
type Options struct {
	// Writer receives log records. Defaults to os.Stderr.
	Writer io.Writer

	// Level is one of trace, debug, info, warn, error or disabled.
	Level string

	// Format is "json" (default) or "console".
	Format string

	// File additionally appends records to <log dir>/<session-id>-notesbridge.log.
	File bool
}

var (
	// Global session ID for the current process
	sessionID     string
	sessionIDOnce sync.Once

	// logDir is the directory where log files are stored
	logDir string

	initOnce sync.Once
	initErr  error
)

// getSessionID returns or creates the session ID for this process
func getSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// initLogDirectory ensures ~/.notesbridge/logs exists
func initLogDirectory() error {
	initOnce.Do(func() {
		if logDir != "" {
			initErr = os.MkdirAll(logDir, 0750)
			return
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}

		logDir = filepath.Join(homeDir, ".notesbridge", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}
	})
	return initErr
}

// New creates a logger for a specific component.
//
// When opts.File is set but the log file cannot be opened, the logger still
// writes to opts.Writer and the error is returned so callers can warn about it.
func New(component string, opts Options) (*Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if strings.EqualFold(opts.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	l := &Logger{
		component: component,
		sessionID: getSessionID(),
	}

	var fileErr error
	if opts.File {
		f, path, err := openLogFile()
		if err != nil {
			fileErr = err
		} else {
			l.file = f
			l.logPath = path
			w = zerolog.MultiLevelWriter(w, f)
		}
	}

	level, _ := ParseLevel(opts.Level)
	l.zl = zerolog.New(w).Level(level).With().
		Timestamp().
		Str("component", component).
		Str("session", l.sessionID).
		Logger()

	if fileErr != nil {
		l.zl.Warn().Err(fileErr).Msg("Falling back to stream-only logging")
	}
	return l, fileErr
}

// Nop returns a logger that discards everything. Useful as a default.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop(), component: "nop"}
}

func openLogFile() (*os.File, string, error) {
	if err := initLogDirectory(); err != nil {
		return nil, "", err
	}
	path := filepath.Join(logDir, fmt.Sprintf("%s-notesbridge.log", getSessionID()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file: %w", err)
	}
	return f, path, nil
}

// With returns a child logger tagged with a different component name.
// The child shares the parent's sink and must not be closed on its own.
func (l *Logger) With(component string) *Logger {
	return &Logger{
		zl:        l.zl.With().Str("component", component).Logger(),
		component: component,
		sessionID: l.sessionID,
		logPath:   l.logPath,
	}
}

// Debug starts a debug-level record.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info starts an info-level record.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn starts a warn-level record.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error starts an error-level record.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, v ...interface{}) { l.zl.Debug().Msgf(format, v...) }

// Infof logs a formatted info message
func (l *Logger) Infof(format string, v ...interface{}) { l.zl.Info().Msgf(format, v...) }

// Warnf logs a formatted warning
func (l *Logger) Warnf(format string, v ...interface{}) { l.zl.Warn().Msgf(format, v...) }

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, v ...interface{}) { l.zl.Error().Msgf(format, v...) }

// Zerolog exposes the underlying logger for libraries that want one.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }

// Component returns the component name
func (l *Logger) Component() string { return l.component }

// SessionID returns the current session ID
func (l *Logger) SessionID() string { return l.sessionID }

// LogPath returns the path to the log file, or "" when file logging is off
func (l *Logger) LogPath() string { return l.logPath }

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

// GetSessionID returns the current global session ID
func GetSessionID() string {
	return getSessionID()
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// yield info and false.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
