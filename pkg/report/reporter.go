// Package report renders suite run results as JSON documents or
// console tables.
package report

import (
	"io"

	"digital.vasic.assertchain/pkg/suite"
)

// Reporter defines the interface for rendering run results.
type Reporter interface {
	// Generate renders the result into a byte slice.
	Generate(result *suite.RunResult) ([]byte, error)

	// Write renders the result into w.
	Write(w io.Writer, result *suite.RunResult) error
}
