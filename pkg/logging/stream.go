package logging

import (
	"io"
	"sync"
	"time"
)

// encoder turns an entry into one output line, newline included.
type encoder func(Entry) ([]byte, error)

// output is shared by a StreamLogger and every logger derived from
// it, so derived loggers serialize writes and observe Close.
type output struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	closed bool
}

func (o *output) write(line []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	_, _ = o.w.Write(line)
}

func (o *output) close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	if o.closer != nil {
		return o.closer.Close()
	}
	return nil
}

// StreamLogger writes encoded entries to an io.Writer. It backs
// both the JSON and the console loggers.
type StreamLogger struct {
	out    *output
	encode encoder
	min    Level
	fields map[string]any
	now    func() time.Time
}

var _ Logger = (*StreamLogger)(nil)

func newStreamLogger(out *output, enc encoder, level Level, fields map[string]any) *StreamLogger {
	return &StreamLogger{
		out:    out,
		encode: enc,
		min:    level,
		fields: withFields(fields, nil),
		now:    time.Now,
	}
}

// Enabled reports whether entries at level are written.
func (s *StreamLogger) Enabled(level Level) bool {
	return level >= s.min
}

func (s *StreamLogger) emit(level Level, msg string, fields []Field) {
	if !s.Enabled(level) {
		return
	}
	line, err := s.encode(Entry{
		Time:    s.now(),
		Level:   level,
		Message: msg,
		Fields:  withFields(s.fields, fields),
	})
	if err != nil {
		return
	}
	s.out.write(line)
}

// Debug writes a debug entry.
func (s *StreamLogger) Debug(msg string, fields ...Field) { s.emit(LevelDebug, msg, fields) }

// Info writes an info entry.
func (s *StreamLogger) Info(msg string, fields ...Field) { s.emit(LevelInfo, msg, fields) }

// Warn writes a warning entry.
func (s *StreamLogger) Warn(msg string, fields ...Field) { s.emit(LevelWarn, msg, fields) }

// Error writes an error entry.
func (s *StreamLogger) Error(msg string, fields ...Field) { s.emit(LevelError, msg, fields) }

// WithFields returns a logger sharing s's output with fields added
// to the defaults.
func (s *StreamLogger) WithFields(fields ...Field) Logger {
	child := *s
	child.fields = withFields(s.fields, fields)
	return &child
}

// Close stops all output through s and its derived loggers and
// closes the destination file if the logger opened it. Closing
// twice is a no-op.
func (s *StreamLogger) Close() error {
	return s.out.close()
}
