package report

import (
	"errors"
	"io"

	"github.com/nao1215/webfreq/internal/model"
)

// ErrNilReport is returned when a nil report is passed to a writer.
var ErrNilReport = errors.New("report is nil")

// Writer writes an analysis report to an output destination.
//
// Design decision: Write returns the number of bytes written like
// io.Writer does, so callers can wrap writers with accounting or
// size limits without knowing the format.
type Writer interface {
	// Write writes the report and returns the number of bytes written.
	Write(report *model.Report) (int, error)
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

// MultiWriter writes a report to multiple writers in order.
// It stops at the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a MultiWriter that duplicates its report to all
// the provided writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write writes the report to every underlying writer and returns the
// total number of bytes written.
func (w *MultiWriter) Write(report *model.Report) (int, error) {
	if report == nil {
		return 0, ErrNilReport
	}

	total := 0
	for _, writer := range w.writers {
		n, err := writer.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
