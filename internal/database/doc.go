// Package database provides SQLite-based persistence for analysis
// results.
//
// Every analysis can be saved to a local history database so earlier
// runs of the same URL can be listed, re-rendered and compared. The
// database lives in the XDG data directory by default and uses the
// pure-Go modernc.org/sqlite driver, so no cgo is required.
package database
