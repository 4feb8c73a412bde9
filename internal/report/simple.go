package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/webfreq/internal/model"
)

// SimpleWriter writes a plain-text frequency report.
//
// The format is column-aligned for terminal reading:
//
//	Report for https://example.com
//	===============================
//
//	HTML tag frequencies:
//	  html                 1
//	  body                 1
//
//	Top 2 words:
//	  1. cat                     2
//	  2. sat                     1
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that writes to the given output.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: baseWriter{output: output}}
}

// Write renders the report as plain text.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	if report == nil {
		return 0, ErrNilReport
	}

	var b strings.Builder

	header := "Report for " + report.URL
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(header)))
	b.WriteString("\n\n")

	b.WriteString("HTML tag frequencies:\n")
	for _, entry := range report.TagFrequencies {
		fmt.Fprintf(&b, "  %-15s %6d\n", entry.Name, entry.Count)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Top %d words:\n", len(report.WordFrequencies))
	rankWidth := len(strconv.Itoa(len(report.WordFrequencies)))
	for i, entry := range report.WordFrequencies {
		fmt.Fprintf(&b, "  %*d. %-20s %6d\n", rankWidth, i+1, entry.Name, entry.Count)
	}

	return io.WriteString(w.output, b.String())
}
