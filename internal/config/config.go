package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Where the original command-line contract
// defines a value (top 100 words, 10 second fetch timeout) we keep it;
// the rest follows common sense for a one-shot page analyzer.
const (
	// DefaultTopN is the number of most frequent words to report.
	DefaultTopN = 100

	// DefaultTimeout bounds each page fetch. The tool makes a single
	// request per URL and should fail fast rather than retry.
	DefaultTimeout = 10 * time.Second

	// DefaultBatchSize is the number of concurrent analyses when multiple
	// URLs are given. Page analysis is cheap; the fetch dominates, so a
	// small amount of parallelism is enough.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "webfreq"
)

// Config holds all configuration options for a run.
//
// Design decision: We use a single flat struct populated from CLI flags
// and passed via dependency injection rather than global state. The
// number of options is small enough that nesting would add complexity
// without benefit.
type Config struct {
	// Targets is the list of URLs to analyze. At least one is required.
	Targets []string

	// TopN is the number of most frequent words to show. Zero is valid
	// and yields an empty word section; negative values are rejected.
	TopN int

	// Timeout is the per-request fetch timeout.
	Timeout time.Duration

	// BatchSize is the number of concurrent analyses for multiple URLs.
	BatchSize int

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport selects JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile, when set, writes the report to this path instead of
	// stdout. Parent directories are created as needed.
	ReportFile string

	// ConfigFilePath is an explicit configuration file path. If empty,
	// .webfreq is searched in the current directory and then $HOME.
	ConfigFilePath string

	// File holds the settings loaded from the configuration file.
	File *File

	// SaveToDB indicates whether analysis results are persisted to the
	// history database.
	SaveToDB bool

	// DBDir is the directory of the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because most defaults are non-zero. The constructor also documents what
// the defaults are.
func NewConfig() *Config {
	return &Config{
		TopN:      DefaultTopN,
		Timeout:   DefaultTimeout,
		BatchSize: DefaultBatchSize,
		File:      NewFile(),
	}
}

// XDGDataDir returns the XDG data directory for webfreq.
// On Linux: ~/.local/share/webfreq
// On macOS: ~/Library/Application Support/webfreq
// On Windows: %LOCALAPPDATA%\webfreq
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for webfreq.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid. It returns the first
// problem found: fixing one error often makes the others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.TopN < 0 {
		return ErrInvalidTopN
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
