// Package logging provides the leveled, prefixed logger shared by every vfsh package.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// LogLevel represents different logging levels
type LogLevel int32

const (
	// LevelError only logs errors
	LevelError LogLevel = iota
	// LevelWarn logs warnings and errors
	LevelWarn
	// LevelInfo logs general information, warnings and errors
	LevelInfo
	// LevelDebug logs detailed debug information and all above
	LevelDebug
	// LevelTrace logs very detailed trace information and all above
	LevelTrace
)

// traceLevel sits below charm's debug level; charm has no trace of its own.
const traceLevel = log.DebugLevel - 4

var charmLevels = map[LogLevel]log.Level{
	LevelError: log.ErrorLevel,
	LevelWarn:  log.WarnLevel,
	LevelInfo:  log.InfoLevel,
	LevelDebug: log.DebugLevel,
	LevelTrace: traceLevel,
}

var levelNames = map[string]LogLevel{
	"ERROR": LevelError,
	"WARN":  LevelWarn,
	"INFO":  LevelInfo,
	"DEBUG": LevelDebug,
	"TRACE": LevelTrace,
}

// ParseLevel maps a level name (case-insensitive) to a LogLevel.
func ParseLevel(name string) (LogLevel, bool) {
	level, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]
	return level, ok
}

// Logger provides leveled logging. Loggers derived with WithPrefix share the
// level and output of their parent, so SetLevel on the root applies everywhere.
type Logger struct {
	level *atomic.Int32
	out   *switchWriter
	charm *log.Logger
}

// switchWriter lets SetOutput reach loggers that were derived before the call.
type switchWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.Write(p)
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	once.Do(func() {
		defaultLogger = NewLogger(os.Stderr, "vfsh")

		if level, ok := ParseLevel(os.Getenv("LOG_LEVEL")); ok {
			defaultLogger.SetLevel(level)
		}
	})
	return defaultLogger
}

// NewLogger creates a new logger writing to w with the given prefix.
func NewLogger(w io.Writer, prefix string) *Logger {
	out := &switchWriter{w: w}
	charm := log.NewWithOptions(out, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Level:           traceLevel,
	})
	if os.Getenv("LOG_CALLER") != "" {
		charm.SetReportCaller(true)
		charm.SetCallerOffset(2)
	}

	level := &atomic.Int32{}
	level.Store(int32(LevelWarn))
	return &Logger{level: level, out: out, charm: charm}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

// Level returns the current logging level.
func (l *Logger) Level() LogLevel {
	return LogLevel(l.level.Load())
}

// SetOutput redirects the logger (and all loggers sharing its backend) to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.out.set(w)
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level > l.Level() {
		return
	}
	l.charm.Logf(charmLevels[level], format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Trace logs a trace message
func (l *Logger) Trace(format string, args ...interface{}) {
	l.log(LevelTrace, format, args...)
}

// WithPrefix creates a new logger with an additional prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	full := prefix
	if parent := l.charm.GetPrefix(); parent != "" {
		full = parent + "/" + prefix
	}
	return &Logger{
		level: l.level,
		out:   l.out,
		charm: l.charm.WithPrefix(full),
	}
}
