// Package log provides slog-based logging for webfreq.
//
// The package wraps slog handlers with a SafeHandler that redacts
// credential-bearing attributes (cookies, authorization headers) and
// truncates oversized string attributes so a debug log never carries a
// full HTML body or a session cookie loaded from the config file.
package log
