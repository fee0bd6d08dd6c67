package assertion

import (
	"context"

	"digital.vasic.assertchain/pkg/failure"
	"digital.vasic.assertchain/pkg/logging"
)

// Step checks a subject and produces the subject of the next link.
// A nil reason means the check passed. A non-nil interface holding
// a nil pointer is still a failure and renders as "<nil>". A step may block, for
// example to read a subject guarded by another goroutine; it must
// not recover its own programming errors into a reason.
type Step[T, U any] func(ctx context.Context, subject T) (U, failure.Reason)

// Evaluate runs step against a's subject and returns the next link.
// If a has already failed, step is not called and the result keeps
// a's reason and line with the zero value of U as subject.
func Evaluate[T, U any](
	ctx context.Context,
	a Assertion[T],
	name string,
	line int,
	step Step[T, U],
) Assertion[U] {
	var placeholder U
	return EvaluateOr(ctx, a, name, line, placeholder, step)
}

// EvaluateOr is Evaluate with an explicit placeholder subject for
// links that are past a failure.
//
// A panic raised by step propagates to the caller unchanged.
func EvaluateOr[T, U any](
	ctx context.Context,
	a Assertion[T],
	name string,
	line int,
	placeholder U,
	step Step[T, U],
) Assertion[U] {
	if a.Failed() {
		return Assertion[U]{
			subject: placeholder,
			name:    a.name,
			line:    a.outcome.Line,
			outcome: a.outcome,
			chain:   a.chain,
		}
	}

	log := a.chain.log()
	log.Debug("evaluating step",
		logging.StringField("check", name),
		logging.IntField("line", line),
	)

	next, reason := step(ctx, a.subject)
	if reason != nil {
		log.Warn("step failed",
			logging.StringField("check", name),
			logging.IntField("line", line),
			logging.StringField("reason", failure.Render(reason)),
		)
		a.chain.report(name, reason, line)

		return Assertion[U]{
			subject: placeholder,
			name:    name,
			line:    line,
			outcome: Outcome{
				Status: StatusFailed,
				Reason: reason,
				Line:   line,
			},
			chain: a.chain,
		}
	}

	return Assertion[U]{
		subject: next,
		name:    name,
		line:    line,
		outcome: Outcome{Status: StatusPassed},
		chain:   a.chain,
	}
}

// Check evaluates a predicate that keeps the subject unchanged.
// When pred returns false the link fails with reason; a nil
// reason is replaced with a message naming the check.
func Check[T any](
	ctx context.Context,
	a Assertion[T],
	name string,
	line int,
	pred func(T) bool,
	reason failure.Reason,
) Assertion[T] {
	if reason == nil {
		reason = failure.Messagef("check %q did not hold", name)
	}
	return Evaluate(ctx, a, name, line,
		func(_ context.Context, v T) (T, failure.Reason) {
			if !pred(v) {
				return v, reason
			}
			return v, nil
		},
	)
}

// Map returns a step that always passes and transforms the subject
// with f.
func Map[T, U any](f func(T) U) Step[T, U] {
	return func(_ context.Context, v T) (U, failure.Reason) {
		return f(v), nil
	}
}
