package failure

import "sync"

// MemoryRecorder stores every Record call in order so that tests
// can inspect what a chain reported. It is safe for concurrent
// use.
type MemoryRecorder struct {
	mu       sync.Mutex
	failures []RecordedFailure
}

// NewMemoryRecorder creates an empty MemoryRecorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record appends a RecordedFailure.
func (m *MemoryRecorder) Record(
	name string, reason Reason, filePath string, line int,
) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failures = append(m.failures, RecordedFailure{
		Name:     name,
		Reason:   reason,
		FilePath: filePath,
		Line:     line,
	})
}

// Failures returns a copy of the stored failures in call order.
func (m *MemoryRecorder) Failures() []RecordedFailure {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]RecordedFailure, len(m.failures))
	copy(out, m.failures)
	return out
}

// Len returns the number of stored failures.
func (m *MemoryRecorder) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.failures)
}

// Clear discards all stored failures.
func (m *MemoryRecorder) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = nil
}
