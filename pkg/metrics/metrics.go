// Package metrics counts suite activity: cases by status, recorded
// failures by check, runs, and the number of cases in flight.
package metrics

import "time"

// SuiteMetrics defines the interface for recording suite metrics.
type SuiteMetrics interface {
	// RecordCase records a finished case.
	RecordCase(caseName, status string, duration time.Duration)
	// RecordFailure records one reported failure.
	RecordFailure(caseName, check string)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// AddActiveCases adjusts the gauge of running cases by delta.
	AddActiveCases(delta int)
}

// NoopMetrics is a no-op implementation of SuiteMetrics used when
// metrics collection is disabled.
type NoopMetrics struct{}

// RecordCase is a no-op.
func (NoopMetrics) RecordCase(_, _ string, _ time.Duration) {}

// RecordFailure is a no-op.
func (NoopMetrics) RecordFailure(_, _ string) {}

// IncrementRunTotal is a no-op.
func (NoopMetrics) IncrementRunTotal() {}

// AddActiveCases is a no-op.
func (NoopMetrics) AddActiveCases(_ int) {}
