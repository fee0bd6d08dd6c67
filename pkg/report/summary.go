package report

import (
	"time"

	"digital.vasic.assertchain/pkg/failure"
	"digital.vasic.assertchain/pkg/suite"
)

// Summary is the reporting view of a run.
type Summary struct {
	RunID      string        `json:"run_id"`
	StartTime  time.Time     `json:"start_time"`
	Duration   time.Duration `json:"duration"`
	TotalCases int           `json:"total_cases"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	Errored    int           `json:"errored"`
	Skipped    int           `json:"skipped"`
	Cases      []CaseSummary `json:"cases"`
}

// CaseSummary describes one case.
type CaseSummary struct {
	Name     string           `json:"name"`
	Status   string           `json:"status"`
	Duration time.Duration    `json:"duration"`
	Error    string           `json:"error,omitempty"`
	Failures []FailureSummary `json:"failures,omitempty"`
}

// FailureSummary is a recorded failure with its reason rendered,
// so the document does not depend on the reason's Go type.
type FailureSummary struct {
	Check  string `json:"check"`
	Reason string `json:"reason"`
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
}

// BuildSummary converts a run result into a Summary.
func BuildSummary(result *suite.RunResult) *Summary {
	s := &Summary{
		RunID:      result.ID,
		StartTime:  result.StartTime,
		Duration:   result.Duration,
		TotalCases: len(result.Cases),
		Passed:     result.Count(suite.StatusPassed),
		Failed:     result.Count(suite.StatusFailed),
		Errored:    result.Count(suite.StatusError),
		Skipped:    result.Count(suite.StatusSkipped),
		Cases:      make([]CaseSummary, 0, len(result.Cases)),
	}

	for _, c := range result.Cases {
		cs := CaseSummary{
			Name:     c.Name,
			Status:   c.Status,
			Duration: c.Duration,
			Error:    c.Error,
		}
		for _, f := range c.Failures {
			cs.Failures = append(cs.Failures, FailureSummary{
				Check:  f.Name,
				Reason: failure.Render(f.Reason),
				File:   f.FilePath,
				Line:   f.Line,
			})
		}
		s.Cases = append(s.Cases, cs)
	}
	return s
}
