// internal/logger/app_logger.go

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// AppLogger writes the binaries' own diagnostics to stderr. It is separate
// from Logger: records never go through it and it never touches log files.
type AppLogger struct {
	mu      sync.Mutex
	writer  io.Writer
	color   bool
	verbose bool
	exit    func(int)
}

// Global instance
var (
	defaultAppLogger *AppLogger
	once             sync.Once
)

// GetAppLogger returns the shared stderr diagnostic logger.
func GetAppLogger() *AppLogger {
	once.Do(func() {
		defaultAppLogger = NewAppLogger(os.Stderr)
	})
	return defaultAppLogger
}

// NewAppLogger creates a diagnostic logger writing to w.
func NewAppLogger(w io.Writer) *AppLogger {
	return &AppLogger{
		writer: w,
		color:  ColorAuto.enabled(w),
		exit:   os.Exit,
	}
}

// SetVerbose toggles Debug output.
func (l *AppLogger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = verbose
}

// logf formats outside the lock and holds it only for the write.
func (l *AppLogger) logf(tag string, format string, args ...interface{}) {
	now := time.Now().UTC().Format(TimestampLayout)
	message := fmt.Sprintf(format, args...)
	line := colorize(fmt.Sprintf("[%s] %s: %s", now, tag, message), l.color)

	l.mu.Lock()
	_, _ = fmt.Fprintln(l.writer, line)
	l.mu.Unlock()
}

// Debug prints a DEBUG diagnostic in verbose mode only.
func (l *AppLogger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	verbose := l.verbose
	l.mu.Unlock()
	if !verbose {
		return
	}
	l.logf(string(LevelDebug), format, args...)
}

// Info prints an INFO diagnostic.
func (l *AppLogger) Info(format string, args ...interface{}) {
	l.logf(string(LevelInfo), format, args...)
}

// Warn prints a WARNING diagnostic.
func (l *AppLogger) Warn(format string, args ...interface{}) {
	l.logf(string(LevelWarning), format, args...)
}

// Error prints an ERROR diagnostic.
func (l *AppLogger) Error(format string, args ...interface{}) {
	l.logf(string(LevelError), format, args...)
}

// Fatal prints a FATAL diagnostic and exits with status 1.
func (l *AppLogger) Fatal(format string, args ...interface{}) {
	l.logf("FATAL", format, args...)
	l.exit(1)
}
