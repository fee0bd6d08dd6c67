package assertion

import (
	"digital.vasic.assertchain/pkg/failure"
	"digital.vasic.assertchain/pkg/logging"
)

// chain holds the settings shared by every link of one chain.
type chain struct {
	recorder failure.Recorder
	filePath string
	logger   logging.Logger
}

func (c *chain) log() logging.Logger {
	if c == nil || c.logger == nil {
		return logging.Nop()
	}
	return c.logger
}

func (c *chain) path() string {
	if c == nil {
		return ""
	}
	return c.filePath
}

func (c *chain) report(name string, reason failure.Reason, line int) {
	if c == nil || c.recorder == nil {
		return
	}
	c.recorder.Record(name, reason, c.filePath, line)
}

// Option configures a chain at creation time.
type Option func(*chain, *int)

// WithRecorder reports the chain's first failure to rec, tagged
// with filePath. Without it a chain only tracks its outcome.
func WithRecorder(rec failure.Recorder, filePath string) Option {
	return func(c *chain, _ *int) {
		c.recorder = rec
		c.filePath = filePath
	}
}

// WithLogger logs link evaluation at debug level and failures at
// warn level.
func WithLogger(logger logging.Logger) Option {
	return func(c *chain, _ *int) {
		c.logger = logger
	}
}

// WithLine tags the root link with the line where the chain was
// created.
func WithLine(line int) Option {
	return func(_ *chain, l *int) {
		*l = line
	}
}

// Assertion is one link of a chain: a subject plus the outcome of
// the step that produced it. The zero value is a pending link over
// the zero subject with reporting disabled.
type Assertion[T any] struct {
	subject T
	name    string
	line    int
	outcome Outcome
	chain   *chain
}

// New starts a chain over subject. The root link is pending.
func New[T any](subject T, opts ...Option) Assertion[T] {
	c := &chain{}
	line := 0
	for _, opt := range opts {
		opt(c, &line)
	}
	return Assertion[T]{
		subject: subject,
		line:    line,
		outcome: Outcome{Status: StatusPending},
		chain:   c,
	}
}

// Subject returns the value under test at this link. Past a
// failure it is the placeholder supplied to EvaluateOr, or the
// zero value.
func (a Assertion[T]) Subject() T { return a.subject }

// Name returns the name of the step that produced this link, or
// of the failing step once the chain has failed.
func (a Assertion[T]) Name() string { return a.name }

// Line returns the call-site line of this link. Once the chain has
// failed it is the line of the first failing step.
func (a Assertion[T]) Line() int { return a.line }

// Outcome returns the link's outcome.
func (a Assertion[T]) Outcome() Outcome {
	if a.outcome.Status == "" {
		return Outcome{Status: StatusPending}
	}
	return a.outcome
}

// Passed reports whether the link's step passed.
func (a Assertion[T]) Passed() bool {
	return a.outcome.Status == StatusPassed
}

// Failed reports whether the chain has failed at or before this
// link.
func (a Assertion[T]) Failed() bool {
	return a.outcome.Status == StatusFailed
}

// Err returns nil unless the chain has failed, in which case it
// returns an *Error describing the first failure.
func (a Assertion[T]) Err() error {
	if !a.Failed() {
		return nil
	}
	return &Error{
		Name:     a.name,
		Reason:   a.outcome.Reason,
		FilePath: a.chain.path(),
		Line:     a.outcome.Line,
	}
}
