package logging

import "errors"

// MultiLogger sends every entry to each of its loggers in order.
type MultiLogger []Logger

// NewMultiLogger combines loggers. Nil entries are dropped and
// nested MultiLoggers are flattened.
func NewMultiLogger(loggers ...Logger) MultiLogger {
	var out MultiLogger
	for _, l := range loggers {
		switch v := l.(type) {
		case nil:
		case MultiLogger:
			out = append(out, v...)
		default:
			out = append(out, v)
		}
	}
	return out
}

func (m MultiLogger) each(fn func(Logger)) {
	for _, l := range m {
		fn(l)
	}
}

// Debug forwards to every logger.
func (m MultiLogger) Debug(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Debug(msg, fields...) })
}

// Info forwards to every logger.
func (m MultiLogger) Info(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Info(msg, fields...) })
}

// Warn forwards to every logger.
func (m MultiLogger) Warn(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Warn(msg, fields...) })
}

// Error forwards to every logger.
func (m MultiLogger) Error(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Error(msg, fields...) })
}

// WithFields derives each logger with fields added.
func (m MultiLogger) WithFields(fields ...Field) Logger {
	derived := make(MultiLogger, 0, len(m))
	m.each(func(l Logger) { derived = append(derived, l.WithFields(fields...)) })
	return derived
}

// Close closes every logger, even after a failure, and joins the
// errors.
func (m MultiLogger) Close() error {
	var errs []error
	m.each(func(l Logger) {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
