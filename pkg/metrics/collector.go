package metrics

import (
	"sync"
	"time"
)

type failureKey struct {
	caseName string
	check    string
}

// Collector implements SuiteMetrics with in-memory counters. It is
// safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	cases     map[string]int
	failures  map[failureKey]int
	durations map[string][]time.Duration
	runTotal  int
	active    int
	peak      int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		cases:     make(map[string]int),
		failures:  make(map[failureKey]int),
		durations: make(map[string][]time.Duration),
	}
}

// RecordCase counts the case under its status and appends its
// duration.
func (c *Collector) RecordCase(caseName, status string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cases[status]++
	c.durations[caseName] = append(c.durations[caseName], duration)
}

// RecordFailure counts one failure of check within caseName.
func (c *Collector) RecordFailure(caseName, check string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures[failureKey{caseName: caseName, check: check}]++
}

// IncrementRunTotal counts one run.
func (c *Collector) IncrementRunTotal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runTotal++
}

// AddActiveCases moves the in-flight gauge by delta and tracks its
// peak.
func (c *Collector) AddActiveCases(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active += delta
	if c.active > c.peak {
		c.peak = c.active
	}
}

// CaseCount returns how many cases finished with status.
func (c *Collector) CaseCount(status string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cases[status]
}

// FailureCount returns how many failures a check reported in a
// case.
func (c *Collector) FailureCount(caseName, check string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures[failureKey{caseName: caseName, check: check}]
}

// Durations returns the recorded durations of a case.
func (c *Collector) Durations(caseName string) []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]time.Duration, len(c.durations[caseName]))
	copy(out, c.durations[caseName])
	return out
}

// RunTotal returns the total number of runs.
func (c *Collector) RunTotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runTotal
}

// ActiveCases returns the current number of running cases.
func (c *Collector) ActiveCases() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// PeakActiveCases returns the highest ActiveCases value seen.
func (c *Collector) PeakActiveCases() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peak
}
