package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/webfreq/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: baseWriter{output: output}}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	if report == nil {
		return 0, ErrNilReport
	}

	md := markdown.NewMarkdown(w.output)

	w.writeSummary(md, report)
	w.writeTagFrequencies(md, report)
	w.writeWordFrequencies(md, report)

	return len(md.String()), md.Build()
}

// writeSummary writes the report header and the page summary table.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H1("Page Report: " + report.URL)
	md.PlainText("")

	rows := [][]string{
		{"URL", "`" + report.URL + "`"},
		{"Analyzed At", report.AnalyzedAt.Format(time.RFC3339)},
		{"Status Code", strconv.Itoa(report.StatusCode)},
		{"Content Type", report.ContentType},
		{"Total Elements", strconv.Itoa(report.TotalElements)},
		{"Total Tokens", strconv.Itoa(report.TotalTokens)},
		{"Distinct Words", strconv.Itoa(report.DistinctWords)},
	}
	if report.Title != "" {
		rows = append([][]string{{"Title", report.Title}}, rows...)
	}

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTagFrequencies writes the tag frequency table.
func (w *MarkdownWriter) writeTagFrequencies(md *markdown.Markdown, report *model.Report) {
	md.H2("HTML Tag Frequencies")
	md.PlainText("")

	rows := make([][]string, 0, len(report.TagFrequencies))
	for _, entry := range report.TagFrequencies {
		rows = append(rows, []string{entry.Name, strconv.Itoa(entry.Count)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Tag", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeWordFrequencies writes the ranked word frequency table.
func (w *MarkdownWriter) writeWordFrequencies(md *markdown.Markdown, report *model.Report) {
	md.H2(fmt.Sprintf("Top %d Words", len(report.WordFrequencies)))
	md.PlainText("")

	rows := make([][]string, 0, len(report.WordFrequencies))
	for i, entry := range report.WordFrequencies {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), entry.Name, strconv.Itoa(entry.Count),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Word", "Count"},
		Rows:   rows,
	})
}
