// Package assertion provides a chainable evaluation engine. A chain
// starts with New, which wraps a subject, and grows one link per
// Evaluate call. Each link either passes, optionally transforming
// the subject for the next link, or fails with a failure.Reason.
//
// The first failure wins: once a link fails, every link derived
// from it carries the same reason and line, and later steps are
// never invoked. When a chain is created WithRecorder, that first
// failure is reported exactly once, at the moment it happens.
//
//	a := assertion.New(expect.Try(fetch()), assertion.WithRecorder(rec, "api_test.go"))
//	body := assertion.Evaluate(ctx, a, "no error", 21, expect.NoError[[]byte]())
//	n := assertion.Evaluate(ctx, body, "payload parses", 22, parseCount)
//	n = assertion.Evaluate(ctx, n, "count", 23, expect.Equal(5))
//
// Links are immutable values and may be shared between goroutines.
// Steps run synchronously on the caller's goroutine, so link N+1
// always observes everything link N's step did.
package assertion
