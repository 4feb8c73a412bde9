// Package config holds the application configuration.
//
// Configuration comes from two sources: CLI flags, which populate the
// Config struct directly, and an optional YAML file (.webfreq) that
// carries the settings awkward to pass on the command line — custom
// stop-word lists, excluded tags, and per-site authentication headers.
// The file is searched in the current directory and then in the user's
// home directory.
//
// Config is passed through the application via dependency injection;
// there is no global configuration state.
package config
