// Package report renders analysis results in multiple formats.
//
// The package provides a Writer interface with three implementations:
// SimpleWriter for the plain-text console report, JSONWriter for
// machine-readable output, and MarkdownWriter for documentation-friendly
// output. MultiWriter fans a report out to several writers at once.
package report
