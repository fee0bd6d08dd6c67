package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"digital.vasic.assertchain/pkg/suite"
)

// TableReporter renders a console table with one row per case,
// followed by the first failure of every failed case.
type TableReporter struct{}

// NewTableReporter creates a TableReporter.
func NewTableReporter() *TableReporter {
	return &TableReporter{}
}

// Generate renders the table into a byte slice.
func (r *TableReporter) Generate(
	result *suite.RunResult,
) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the table into w.
func (r *TableReporter) Write(
	w io.Writer,
	result *suite.RunResult,
) error {
	s := BuildSummary(result)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Case", "Status", "Duration", "Failure"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	for _, c := range s.Cases {
		table.Append([]string{
			c.Name,
			strings.ToUpper(c.Status),
			c.Duration.Round(time.Microsecond).String(),
			firstProblem(c),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", s.TotalCases),
		fmt.Sprintf("%d passed", s.Passed),
		fmt.Sprintf("%d failed", s.Failed+s.Errored),
		fmt.Sprintf("%d skipped", s.Skipped),
	})

	table.Render()

	_, err := io.Copy(w, &tableBuffer)
	return err
}

func firstProblem(c CaseSummary) string {
	if c.Error != "" {
		return c.Error
	}
	if len(c.Failures) == 0 {
		return ""
	}
	f := c.Failures[0]
	loc := fmt.Sprintf("line %d", f.Line)
	if f.File != "" {
		loc = fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}
	return fmt.Sprintf("%s %s: %s", loc, f.Check, f.Reason)
}
