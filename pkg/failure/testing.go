package failure

import (
	"fmt"
	"path/filepath"
)

// TB is the subset of testing.TB that TestingRecorder needs.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
}

// TestingRecorder forwards failures to a Go test through Errorf,
// so the test is marked failed. Each message starts with the
// captured file and line of the failing step. The location that
// go test prints in front of it points into the engine, since the
// chain's frames between the test and Record are not helpers.
type TestingRecorder struct {
	tb TB
}

// NewTestingRecorder creates a recorder bound to tb.
func NewTestingRecorder(tb TB) *TestingRecorder {
	return &TestingRecorder{tb: tb}
}

// Record reports the failure to the test.
func (r *TestingRecorder) Record(
	name string, reason Reason, filePath string, line int,
) {
	r.tb.Helper()
	r.tb.Errorf("%s", formatFailure(name, reason, filePath, line))
}

func formatFailure(
	name string, reason Reason, filePath string, line int,
) string {
	loc := fmt.Sprintf("line %d", line)
	if filePath != "" {
		loc = fmt.Sprintf("%s:%d", filepath.Base(filePath), line)
	}
	return fmt.Sprintf("%s: %s: %s", loc, name, Render(reason))
}
