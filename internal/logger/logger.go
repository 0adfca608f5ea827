// Package logger provides leveled logging for the feedcorpus CLI.
//
// Warnings and errors are printed by default. The --verbose flag lowers
// the threshold to debug so ingestion and weighting steps can be followed
// on stderr; --log-level selects any other threshold.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level is a message severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// DefaultLevel is the threshold used unless verbose or a level is set.
const DefaultLevel = LevelWarn

// String returns the tag printed in front of messages.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelError, fmt.Errorf("unknown log level %q", name)
}

var (
	mu        sync.RWMutex
	threshold           = DefaultLevel
	output    io.Writer = os.Stderr
)

// SetVerbose switches between debug output and the default threshold.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(DefaultLevel)
}

// IsVerbose returns true if debug messages are printed.
func IsVerbose() bool {
	return Enabled(LevelDebug)
}

// SetLevel sets the lowest level that is printed.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	threshold = l
}

// Enabled reports whether messages at l are printed.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= threshold
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l >= threshold {
		fmt.Fprintf(output, "["+l.String()+"] "+format+"\n", args...)
	}
}

// Debug prints a debug message.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info prints an informational message.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn prints a warning.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error prints an error.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section prints a section header when info messages are printed.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if LevelInfo >= threshold {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
