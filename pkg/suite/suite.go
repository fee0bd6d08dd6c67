// Package suite runs named assertion cases concurrently, giving
// each case its own recorder and collecting results in the order
// the cases were submitted.
package suite

import (
	"context"
	"fmt"
	"time"

	"digital.vasic.assertchain/pkg/failure"
)

// Status constants for case outcomes.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Case is one independent unit of checks. Run builds its chains
// with rec as their recorder; any failure recorded marks the case
// failed.
type Case struct {
	Name string
	Run  func(ctx context.Context, rec failure.Recorder)
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name     string                    `json:"name"`
	Status   string                    `json:"status"`
	Failures []failure.RecordedFailure `json:"failures,omitempty"`
	Error    string                    `json:"error,omitempty"`
	Duration time.Duration             `json:"duration"`
}

// RunResult is the outcome of one Runner.Run call.
type RunResult struct {
	ID        string        `json:"id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Cases     []CaseResult  `json:"cases"`
}

// Count returns the number of cases with the given status.
func (r *RunResult) Count(status string) int {
	n := 0
	for _, c := range r.Cases {
		if c.Status == status {
			n++
		}
	}
	return n
}

// AllPassed returns true if every case passed.
func (r *RunResult) AllPassed() bool {
	return r.Count(StatusPassed) == len(r.Cases)
}

// Select returns the cases whose names are listed, in the order
// of cases. An empty names list selects every case.
func Select(cases []Case, names []string) ([]Case, error) {
	if len(names) == 0 {
		return cases, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = false
	}

	var out []Case
	for _, c := range cases {
		if _, ok := wanted[c.Name]; ok {
			wanted[c.Name] = true
			out = append(out, c)
		}
	}

	for _, n := range names {
		if !wanted[n] {
			return nil, fmt.Errorf("unknown case: %s", n)
		}
	}
	return out, nil
}
