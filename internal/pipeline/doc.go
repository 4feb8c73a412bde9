// Package pipeline orchestrates the page analysis steps.
//
// A single analysis is a fixed sequence: fetch the page, parse the HTML,
// count tag frequencies, extract visible text and count word frequencies.
// Each step implements the Step interface and mutates a shared
// model.Report. BatchProcessor runs the same pipeline over multiple URLs
// concurrently with a bounded number of goroutines.
package pipeline
