// Package failure defines why an assertion chain failed and the
// recorder contract through which that failure is reported to a
// host. Reporting never fails: recorders have no error return.
package failure

import (
	"fmt"
	"reflect"
)

// Reason describes why a check failed. The set of variants is
// closed; use Message or Mismatch.
type Reason interface {
	// Render returns the human-readable form of the reason.
	Render() string

	isReason()
}

// Message is a free-text failure reason.
type Message struct {
	Text string `json:"text"`
}

// Render returns the message text.
func (m Message) Render() string { return m.Text }

func (Message) isReason() {}

// Messagef builds a Message from a format string.
func Messagef(format string, args ...any) Message {
	return Message{Text: fmt.Sprintf(format, args...)}
}

// Mismatch reports an expected value that differed from the
// observed one. Text is an optional lead-in.
type Mismatch struct {
	Expected any    `json:"expected"`
	Actual   any    `json:"actual"`
	Text     string `json:"text,omitempty"`
}

// NewMismatch creates a Mismatch reason.
func NewMismatch(expected, actual any, text string) Mismatch {
	return Mismatch{Expected: expected, Actual: actual, Text: text}
}

// Render formats the pair as "text: expected X, got Y".
func (m Mismatch) Render() string {
	pair := fmt.Sprintf("expected %v, got %v", m.Expected, m.Actual)
	if m.Text == "" {
		return pair
	}
	return m.Text + ": " + pair
}

func (Mismatch) isReason() {}

// Render returns r.Render(), or "<nil>" for a nil reason. A nil
// pointer stored in the interface also renders as "<nil>".
func Render(r Reason) string {
	if IsNil(r) {
		return "<nil>"
	}
	return r.Render()
}

// IsNil reports whether r is nil or holds a nil pointer.
func IsNil(r Reason) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
