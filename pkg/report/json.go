package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"digital.vasic.assertchain/pkg/suite"
)

// JSONReporter generates JSON reports from run results.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// Generate renders the run summary as JSON.
func (r *JSONReporter) Generate(
	result *suite.RunResult,
) ([]byte, error) {
	summary := BuildSummary(result)
	if r.pretty {
		return json.MarshalIndent(summary, "", "  ")
	}
	return json.Marshal(summary)
}

// Write writes the JSON report to w.
func (r *JSONReporter) Write(
	w io.Writer,
	result *suite.RunResult,
) error {
	data, err := r.Generate(result)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteFile writes the JSON report to path, creating parent
// directories as needed.
func (r *JSONReporter) WriteFile(
	path string,
	result *suite.RunResult,
) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf(
			"failed to create report directory: %w", err,
		)
	}

	data, err := r.Generate(result)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
