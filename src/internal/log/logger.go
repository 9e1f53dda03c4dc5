package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is the verbosity level. Messages with a level above the logger's
// level are discarded. Errors are always printed.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelVerbose
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// LevelFromVerbosity maps the number of -v flags to a level, clamping to [0, 3].
func LevelFromVerbosity(count int) Level {
	if count < int(LevelError) {
		return LevelError
	}
	if count > int(LevelVerbose) {
		return LevelVerbose
	}
	return Level(count)
}

var logPrefixes = map[Level]string{
	LevelVerbose: "\033[37m[VRB]\033[0m", // White
	LevelInfo:    "\033[36m[INF]\033[0m", // Cyan
	LevelWarn:    "\033[33m[WRN]\033[0m", // Yellow
	LevelError:   "\033[31m[ERR]\033[0m", // Red
}

// Logger is a leveled logger. Errors go to the error stream, everything else
// to the output stream unless ForceStdErr is set.
type Logger struct {
	mu          sync.Mutex
	out         io.Writer
	errOut      io.Writer
	level       Level
	forceStdErr bool
	disabled    bool
}

// New creates a logger writing to out and errOut.
func New(out, errOut io.Writer, level Level) *Logger {
	return &Logger{
		out:    out,
		errOut: errOut,
		level:  level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	l := New(io.Discard, io.Discard, LevelError)
	l.disabled = true
	return l
}

var std = New(os.Stdout, os.Stderr, LevelError)

// Default returns the process-wide logger writing to stdout/stderr.
func Default() *Logger {
	return std
}

// SetLevel changes the verbosity level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the current verbosity level.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetForceStdErr sends all messages to the error stream.
func (l *Logger) SetForceStdErr(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.forceStdErr = v
}

// Verbosef logs a message at the verbose level.
func (l *Logger) Verbosef(format string, args ...interface{}) {
	l.logMessage(LevelVerbose, format, args...)
}

// Infof logs an info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logMessage(LevelInfo, format, args...)
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logMessage(LevelWarn, format, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logMessage(LevelError, format, args...)
}

// Fatalf logs an error message and exits the program.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logMessage(LevelError, format, args...)
	os.Exit(1)
}

// logMessage formats and writes a log message with the specified log level.
func (l *Logger) logMessage(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disabled || level > l.level {
		return
	}
	output := logPrefixes[level] + " " + fmt.Sprintf(format, args...) + "\n"

	w := l.out
	if l.forceStdErr || level == LevelError {
		w = l.errOut
	}
	_, _ = io.WriteString(w, output)
}

// Fatalf logs an error message with the default logger and exits the program.
func Fatalf(format string, args ...interface{}) {
	std.Fatalf(format, args...)
}
