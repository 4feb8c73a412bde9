// Package main provides the entry point for the webfreq CLI.
//
// webfreq fetches a web page and reports statistics about its content:
// how often each HTML tag appears and which words dominate the visible
// text.
//
// Usage:
//
//	webfreq analyze <url>
//	webfreq history --list-urls
//
// See --help for all available options.
package main

// main is the entry point for webfreq.
func main() {
	Execute()
}
