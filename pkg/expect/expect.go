// Package expect provides ready-made steps for assertion chains:
// equality, emptiness, counts, substrings, and error unwrapping.
// Every function returns an assertion.Step and is meant to be
// passed to assertion.Evaluate.
package expect

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"

	"digital.vasic.assertchain/pkg/assertion"
	"digital.vasic.assertchain/pkg/failure"
)

// Equal passes when the subject is structurally equal to want.
// Unexported struct fields take part in the comparison.
func Equal[T any](want T) assertion.Step[T, T] {
	return func(_ context.Context, got T) (T, failure.Reason) {
		if !cmp.Equal(want, got, cmp.Exporter(func(reflect.Type) bool { return true })) {
			return got, failure.NewMismatch(want, got, "")
		}
		return got, nil
	}
}

// True passes when the subject is true.
func True(msg string) assertion.Step[bool, bool] {
	return func(_ context.Context, v bool) (bool, failure.Reason) {
		if !v {
			return v, failure.Message{Text: msg}
		}
		return v, nil
	}
}

// NotNil passes when the subject is neither an untyped nil nor a
// nil pointer, slice, map, channel, function, or interface.
func NotNil[T any]() assertion.Step[T, T] {
	return func(_ context.Context, v T) (T, failure.Reason) {
		if isNil(v) {
			return v, failure.Message{Text: "value is nil"}
		}
		return v, nil
	}
}

// NotEmpty passes for non-nil values with a non-zero length.
// Strings consisting only of whitespace count as empty.
func NotEmpty[T any]() assertion.Step[T, T] {
	return func(_ context.Context, v T) (T, failure.Reason) {
		if isNil(v) {
			return v, failure.Message{Text: "value is nil"}
		}
		if s, ok := any(v).(string); ok {
			if strings.TrimSpace(s) == "" {
				return v, failure.Message{Text: "string is empty"}
			}
			return v, nil
		}
		if n, ok := length(v); ok && n == 0 {
			return v, failure.Messagef("%T is empty", v)
		}
		return v, nil
	}
}

// Contains passes when the subject contains substr, ignoring case.
func Contains(substr string) assertion.Step[string, string] {
	return func(_ context.Context, s string) (string, failure.Reason) {
		if !strings.Contains(strings.ToLower(s), strings.ToLower(substr)) {
			return s, failure.Messagef("does not contain '%s'", substr)
		}
		return s, nil
	}
}

// MinLength passes when the subject has at least n characters.
func MinLength(n int) assertion.Step[string, string] {
	return func(_ context.Context, s string) (string, failure.Reason) {
		if got := len([]rune(s)); got < n {
			return s, failure.NewMismatch(
				fmt.Sprintf(">= %d", n), got, "length",
			)
		}
		return s, nil
	}
}

// Len passes when the subject's length is exactly n. It fails for
// subjects that have no length.
func Len[T any](n int) assertion.Step[T, T] {
	return func(_ context.Context, v T) (T, failure.Reason) {
		got, ok := length(v)
		if !ok {
			return v, failure.Messagef("%T has no length", v)
		}
		if got != n {
			return v, failure.NewMismatch(n, got, "length")
		}
		return v, nil
	}
}

// MinCount passes when the subject's length is at least n.
func MinCount[T any](n int) assertion.Step[T, T] {
	return func(_ context.Context, v T) (T, failure.Reason) {
		got, ok := length(v)
		if !ok {
			return v, failure.Messagef("%T has no length", v)
		}
		if got < n {
			return v, failure.NewMismatch(
				fmt.Sprintf(">= %d", n), got, "count",
			)
		}
		return v, nil
	}
}

// NoDuplicates passes when no two elements of the subject slice
// are equal.
func NoDuplicates[E comparable]() assertion.Step[[]E, []E] {
	return func(_ context.Context, v []E) ([]E, failure.Reason) {
		seen := make(map[E]struct{}, len(v))
		for _, e := range v {
			if _, dup := seen[e]; dup {
				return v, failure.Messagef("duplicate value: %v", e)
			}
			seen[e] = struct{}{}
		}
		return v, nil
	}
}

// Field projects the subject to a derived value, such as a struct
// field or a method result, for the next link. It fails instead of
// calling f when the subject is a nil pointer, map, slice, or
// interface, naming the projection in the reason.
func Field[T, U any](name string, f func(T) U) assertion.Step[T, U] {
	return func(_ context.Context, v T) (U, failure.Reason) {
		if isNil(v) {
			var zero U
			return zero, failure.Messagef("cannot read %s of nil %T", name, v)
		}
		return f(v), nil
	}
}

// Result pairs a value with the error that came with it, so a
// (value, error) return can become a chain subject.
type Result[T any] struct {
	Value T
	Err   error
}

// Try wraps a (value, error) pair.
func Try[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err}
}

// NoError passes when the result carries no error and unwraps the
// value for the next link.
func NoError[T any]() assertion.Step[Result[T], T] {
	return func(_ context.Context, r Result[T]) (T, failure.Reason) {
		if r.Err != nil {
			return r.Value, failure.Messagef("unexpected error: %v", r.Err)
		}
		return r.Value, nil
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice,
		reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func length(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array,
		reflect.Map, reflect.Chan:
		return rv.Len(), true
	default:
		return 0, false
	}
}
