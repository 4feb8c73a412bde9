package config

import "errors"

var (
	// ErrNoTarget is returned when no URL is given.
	ErrNoTarget = errors.New("no target URL specified")

	// ErrInvalidTopN is returned when the word count limit is negative.
	ErrInvalidTopN = errors.New("top word count must be zero or positive")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrConflictingReportFormats is returned when more than one report
	// format is selected.
	ErrConflictingReportFormats = errors.New("only one report format can be selected")

	// ErrConfigNotFound is returned when the configuration file does not
	// exist at the given path.
	ErrConfigNotFound = errors.New("config file not found")
)
