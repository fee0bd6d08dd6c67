package logging

import (
	"errors"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a *zap.Logger to the Logger interface.
type ZapLogger struct {
	logger *zap.Logger
}

// Compile-time check that ZapLogger satisfies Logger.
var _ Logger = (*ZapLogger)(nil)

// NewZapLogger wraps an existing zap logger. A nil logger is
// replaced with zap.NewNop.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger}
}

// NewProductionZapLogger builds a JSON zap logger on stderr at
// the given minimum level.
func NewProductionZapLogger(level Level) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(levelToZap(level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(logger), nil
}

// levelToZap relies on Level sharing zapcore's numbering.
func levelToZap(level Level) zapcore.Level {
	return zapcore.Level(level)
}

func fieldsToZap(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

// Info logs an informational message.
func (z *ZapLogger) Info(msg string, fields ...Field) {
	z.logger.Info(msg, fieldsToZap(fields)...)
}

// Warn logs a warning message.
func (z *ZapLogger) Warn(msg string, fields ...Field) {
	z.logger.Warn(msg, fieldsToZap(fields)...)
}

// Error logs an error message.
func (z *ZapLogger) Error(msg string, fields ...Field) {
	z.logger.Error(msg, fieldsToZap(fields)...)
}

// Debug logs a debug message.
func (z *ZapLogger) Debug(msg string, fields ...Field) {
	z.logger.Debug(msg, fieldsToZap(fields)...)
}

// WithFields returns a child logger carrying the given fields.
func (z *ZapLogger) WithFields(fields ...Field) Logger {
	return &ZapLogger{logger: z.logger.With(fieldsToZap(fields)...)}
}

// Close flushes buffered entries. Sync errors caused by syncing
// a terminal or pipe are ignored.
func (z *ZapLogger) Close() error {
	err := z.logger.Sync()
	if err == nil ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.ENOTTY) ||
		errors.Is(err, os.ErrInvalid) {
		return nil
	}
	return err
}
