package assertion

import (
	"errors"
	"fmt"

	"digital.vasic.assertchain/pkg/failure"
)

// Status is the terminal state of a link.
type Status string

// Status values.
const (
	StatusPending Status = "pending"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// Outcome is the pass/fail state of a link. Reason and Line are
// only set when Status is StatusFailed.
type Outcome struct {
	Status Status
	Reason failure.Reason
	Line   int
}

// String renders the outcome for logs and test messages.
func (o Outcome) String() string {
	if o.Status != StatusFailed {
		return string(o.Status)
	}
	return fmt.Sprintf(
		"failed at line %d: %s", o.Line, failure.Render(o.Reason),
	)
}

// ErrFailed is the sentinel wrapped by every *Error.
var ErrFailed = errors.New("assertion failed")

// Error describes the first failure of a chain as a Go error.
type Error struct {
	Name     string
	Reason   failure.Reason
	FilePath string
	Line     int
}

// Error returns "assertion failed: name (line N): reason".
func (e *Error) Error() string {
	if e == nil {
		return ErrFailed.Error()
	}
	return fmt.Sprintf(
		"%s: %s (line %d): %s",
		ErrFailed, e.Name, e.Line, failure.Render(e.Reason),
	)
}

// Unwrap returns ErrFailed so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return ErrFailed
}
