package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nao1215/webfreq/internal/model"
)

// JSONWriter writes a report as indented JSON.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that writes to the given output.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: baseWriter{output: output}}
}

// Write renders the report as JSON followed by a trailing newline.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	if report == nil {
		return 0, ErrNilReport
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal report: %w", err)
	}

	n, err := w.output.Write(append(data, '\n'))
	if err != nil {
		return n, fmt.Errorf("failed to write JSON report: %w", err)
	}
	return n, nil
}
