package assertion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertchain/pkg/failure"
	"digital.vasic.assertchain/pkg/logging"
)

const testFile = "assertion_test.go"

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(
	name string, reason failure.Reason, filePath string, line int,
) {
	m.Called(name, reason, filePath, line)
}

func pass[T any]() Step[T, T] {
	return func(_ context.Context, v T) (T, failure.Reason) {
		return v, nil
	}
}

func fail[T any](text string) Step[T, T] {
	return func(_ context.Context, v T) (T, failure.Reason) {
		return v, failure.Message{Text: text}
	}
}

func TestNew_IsPending(t *testing.T) {
	a := New(42, WithLine(7))

	assert.Equal(t, StatusPending, a.Outcome().Status)
	assert.Equal(t, 42, a.Subject())
	assert.Equal(t, 7, a.Line())
	assert.False(t, a.Passed())
	assert.False(t, a.Failed())
	assert.NoError(t, a.Err())
}

func TestZeroValue_IsPending(t *testing.T) {
	var a Assertion[string]

	assert.Equal(t, StatusPending, a.Outcome().Status)

	next := Evaluate(context.Background(), a, "non-empty", 3,
		fail[string]("empty"),
	)
	assert.True(t, next.Failed())
	assert.Equal(t, 3, next.Line())
}

func TestEmptyChain_NeverReports(t *testing.T) {
	rec := &mockRecorder{}

	a := New("subject", WithRecorder(rec, testFile))

	assert.Equal(t, "pending", a.Outcome().String())
	rec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_PassingChainTransformsSubject(t *testing.T) {
	ctx := context.Background()
	rec := failure.NewMemoryRecorder()

	a := New("5", WithRecorder(rec, testFile))
	n := Evaluate(ctx, a, "parses", 10,
		func(_ context.Context, s string) (int, failure.Reason) {
			v, err := strconv.Atoi(s)
			if err != nil {
				return 0, failure.Messagef("not a number: %v", err)
			}
			return v, nil
		},
	)
	n = Check(ctx, n, "positive", 11, func(v int) bool { return v > 0 }, nil)
	doubled := Evaluate(ctx, n, "double", 12, Map(func(v int) int { return v * 2 }))

	assert.True(t, doubled.Passed())
	assert.Equal(t, 10, doubled.Subject())
	assert.Equal(t, "double", doubled.Name())
	assert.Equal(t, 12, doubled.Line())
	assert.Equal(t, "passed", doubled.Outcome().String())
	assert.Zero(t, rec.Len())
}

func TestEvaluate_FirstFailureWins(t *testing.T) {
	ctx := context.Background()
	rec := &mockRecorder{}
	reason := failure.Message{Text: "payload is empty"}
	rec.On("Record", "has payload", reason, testFile, 21).Once()

	a := New([]byte{}, WithRecorder(rec, testFile))
	a = Evaluate(ctx, a, "no error", 20, pass[[]byte]())
	a = Evaluate(ctx, a, "has payload", 21,
		func(_ context.Context, b []byte) ([]byte, failure.Reason) {
			return nil, reason
		},
	)

	called := false
	n := Evaluate(ctx, a, "count", 22,
		func(_ context.Context, b []byte) (int, failure.Reason) {
			called = true
			return len(b), failure.Message{Text: "never"}
		},
	)
	n = Check(ctx, n, "is five", 23, func(v int) bool { return v == 5 }, nil)

	assert.False(t, called, "step past a failure must not run")
	assert.True(t, n.Failed())
	assert.Equal(t, Outcome{Status: StatusFailed, Reason: reason, Line: 21}, n.Outcome())
	assert.Equal(t, 21, n.Line())
	assert.Equal(t, "has payload", n.Name())
	assert.Zero(t, n.Subject())
	rec.AssertExpectations(t)
}

func TestEvaluateOr_UsesPlaceholderPastFailure(t *testing.T) {
	ctx := context.Background()

	a := Evaluate(ctx, New(1), "fails", 5, fail[int]("boom"))
	s := EvaluateOr(ctx, a, "to string", 6, "<unset>",
		func(_ context.Context, v int) (string, failure.Reason) {
			return strconv.Itoa(v), nil
		},
	)

	assert.Equal(t, "<unset>", s.Subject())
	assert.True(t, s.Failed())
	assert.Equal(t, 5, s.Outcome().Line)
}

func TestEvaluateOr_FailingStepUsesPlaceholder(t *testing.T) {
	s := EvaluateOr(context.Background(), New(1), "fails", 9, "n/a",
		func(_ context.Context, v int) (string, failure.Reason) {
			return "ignored", failure.Message{Text: "no"}
		},
	)

	assert.Equal(t, "n/a", s.Subject())
}

func TestEvaluate_ReportsOnlyFirstFailureLine(t *testing.T) {
	ctx := context.Background()
	rec := failure.NewMemoryRecorder()

	a := New(0, WithRecorder(rec, testFile))
	a = Evaluate(ctx, a, "first", 30, fail[int]("first"))
	a = Evaluate(ctx, a, "second", 31, fail[int]("second"))
	a = Check(ctx, a, "third", 32, func(int) bool { return false }, nil)

	require.Equal(t, 1, rec.Len())
	got := rec.Failures()[0]
	assert.True(t, got.Equal(failure.RecordedFailure{
		Name:     "first",
		Reason:   failure.Message{Text: "first"},
		FilePath: testFile,
		Line:     30,
	}))
}

func TestEvaluate_BranchesReportIndependently(t *testing.T) {
	ctx := context.Background()
	rec := failure.NewMemoryRecorder()

	root := New("x", WithRecorder(rec, testFile))
	left := Evaluate(ctx, root, "left", 1, fail[string]("l"))
	right := Evaluate(ctx, root, "right", 2, fail[string]("r"))

	assert.True(t, left.Failed())
	assert.True(t, right.Failed())
	assert.Equal(t, StatusPending, root.Outcome().Status)
	assert.Equal(t, 2, rec.Len())
}

func TestEvaluate_PanickingStepPropagates(t *testing.T) {
	rec := failure.NewMemoryRecorder()
	a := New(1, WithRecorder(rec, testFile))

	assert.PanicsWithValue(t, "predicate bug", func() {
		Evaluate(context.Background(), a, "explodes", 4,
			func(context.Context, int) (int, failure.Reason) {
				panic("predicate bug")
			},
		)
	})
	assert.Zero(t, rec.Len())
}

func TestCheck_DefaultReason(t *testing.T) {
	a := Check(context.Background(), New(3), "is even", 8,
		func(v int) bool { return v%2 == 0 }, nil,
	)

	require.True(t, a.Failed())
	assert.Equal(t, `check "is even" did not hold`, a.Outcome().Reason.Render())
	assert.Equal(t, `failed at line 8: check "is even" did not hold`, a.Outcome().String())
}

func TestErr_WrapsSentinel(t *testing.T) {
	a := New("x", WithRecorder(failure.NewMemoryRecorder(), testFile))
	a = Evaluate(context.Background(), a, "length", 14,
		func(_ context.Context, s string) (string, failure.Reason) {
			return s, failure.NewMismatch(3, len(s), "length")
		},
	)

	err := a.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFailed))

	var aerr *Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "length", aerr.Name)
	assert.Equal(t, testFile, aerr.FilePath)
	assert.Equal(t, 14, aerr.Line)
	assert.Equal(t,
		"assertion failed: length (line 14): length: expected 3, got 1",
		err.Error(),
	)
}

func TestError_NilReceiver(t *testing.T) {
	var e *Error
	assert.Equal(t, "assertion failed", e.Error())
}

func TestWithLogger_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewConsoleLogger(&buf, logging.LevelDebug, false)

	a := New(1, WithLogger(logger))
	a = Evaluate(context.Background(), a, "ok", 1, pass[int]())
	_ = Evaluate(context.Background(), a, "bad", 2, fail[int]("nope"))

	out := buf.String()
	assert.Contains(t, out, "evaluating step")
	assert.Contains(t, out, "step failed")
	assert.Contains(t, out, "reason=nope")
}

func TestEvaluate_AsyncStepIsObservedByNextLink(t *testing.T) {
	ctx := context.Background()
	state := 0

	a := Evaluate(ctx, New(struct{}{}), "async write", 1,
		func(ctx context.Context, v struct{}) (struct{}, failure.Reason) {
			done := make(chan struct{})
			go func() {
				state = 42
				close(done)
			}()
			select {
			case <-done:
			case <-ctx.Done():
				return v, failure.Message{Text: "cancelled"}
			}
			return v, nil
		},
	)
	a = Check(ctx, a, "sees write", 2, func(struct{}) bool { return state == 42 }, nil)

	assert.True(t, a.Passed())
}

func TestEvaluate_FailureIsIdempotentAcrossRandomChains(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		rec := failure.NewMemoryRecorder()
		length := 1 + rng.Intn(12)
		failAt := rng.Intn(length + 1) // == length means no failure

		a := New(0, WithRecorder(rec, testFile))
		for link := 0; link < length; link++ {
			step := pass[int]()
			if link == failAt {
				step = fail[int]("link " + strconv.Itoa(link))
			}
			a = Evaluate(ctx, a, "link", 100+link, step)

			if link >= failAt {
				require.True(t, a.Failed())
				require.Equal(t, 100+failAt, a.Outcome().Line)
				require.Equal(t, "link "+strconv.Itoa(failAt), a.Outcome().Reason.Render())
			}
		}

		if failAt == length {
			assert.True(t, a.Passed())
			assert.Zero(t, rec.Len())
		} else {
			require.Equal(t, 1, rec.Len())
			assert.Equal(t, 100+failAt, rec.Failures()[0].Line)
		}
	}
}

func TestEvaluate_NilPointerReasonFails(t *testing.T) {
	rec := failure.NewMemoryRecorder()
	var buf bytes.Buffer
	a := New(1,
		WithRecorder(rec, testFile),
		WithLogger(logging.NewConsoleLogger(&buf, logging.LevelDebug, false)),
	)

	var missing *failure.Message
	var next Assertion[int]
	require.NotPanics(t, func() {
		next = Evaluate(context.Background(), a, "typed nil", 31,
			func(_ context.Context, v int) (int, failure.Reason) { return v, missing },
		)
	})

	require.True(t, next.Failed())
	assert.Equal(t, "failed at line 31: <nil>", next.Outcome().String())
	assert.Equal(t, 1, rec.Len())
	assert.Contains(t, buf.String(), "reason=<nil>")
}

type testHost struct {
	messages []string
}

func (h *testHost) Helper() {}

func (h *testHost) Errorf(format string, args ...any) {
	h.messages = append(h.messages, fmt.Sprintf(format, args...))
}

func TestTestingRecorder_MessageCarriesStepLocation(t *testing.T) {
	host := &testHost{}
	a := New(3, WithRecorder(failure.NewTestingRecorder(host), "/src/cart_test.go"))

	a = Check(context.Background(), a, "even", 77, func(v int) bool { return v%2 == 0 }, nil)
	_ = Check(context.Background(), a, "positive", 78, func(v int) bool { return v > 0 }, nil)

	require.Len(t, host.messages, 1)
	assert.Equal(t, `cart_test.go:77: even: check "even" did not hold`, host.messages[0])
}
