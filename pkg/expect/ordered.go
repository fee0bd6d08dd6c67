package expect

import (
	stdcmp "cmp"
	"context"
	"fmt"

	"digital.vasic.assertchain/pkg/assertion"
	"digital.vasic.assertchain/pkg/failure"
)

// AtMost passes when the subject is less than or equal to limit.
func AtMost[N stdcmp.Ordered](limit N) assertion.Step[N, N] {
	return func(_ context.Context, v N) (N, failure.Reason) {
		if v > limit {
			return v, failure.NewMismatch(fmt.Sprintf("<= %v", limit), v, "")
		}
		return v, nil
	}
}

// AtLeast passes when the subject is greater than or equal to limit.
func AtLeast[N stdcmp.Ordered](limit N) assertion.Step[N, N] {
	return func(_ context.Context, v N) (N, failure.Reason) {
		if v < limit {
			return v, failure.NewMismatch(fmt.Sprintf(">= %v", limit), v, "")
		}
		return v, nil
	}
}
