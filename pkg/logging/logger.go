// Package logging provides structured logging for assertion chains
// and the suite runner with JSON, console, zap, and multi-destination
// output.
package logging

import (
	"fmt"
	"strings"
	"time"
)

// Logger is the structured logger used across the module. Every
// implementation is safe for concurrent use.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithFields returns a Logger that attaches fields to every
	// entry. The receiver is left unchanged.
	WithFields(fields ...Field) Logger

	// Close flushes buffered output and releases resources owned
	// by the logger. Derived loggers share the same resources.
	Close() error
}

// Field is a key-value pair attached to an entry.
type Field struct {
	Key   string
	Value any
}

// Level is the severity of an entry.
type Level int8

// Levels share zapcore's numbering.
const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// String returns the lowercase level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int8(l))
}

// ParseLevel converts a case-insensitive level name into a Level.
// An empty name selects LevelInfo.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "":
		return LevelInfo, nil
	case "warning":
		return LevelWarn, nil
	}
	for lvl, n := range levelNames {
		if n == name {
			return lvl, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level: %q", s)
}

// Entry is a single record handed to an encoder.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  map[string]any
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field) {}
func (nopLogger) Warn(string, ...Field) {}
func (nopLogger) Error(string, ...Field) {}
func (n nopLogger) WithFields(...Field) Logger { return n }
func (nopLogger) Close() error { return nil }
