// Package main provides the entry point for the webfreq CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nao1215/webfreq/internal/config"
	"github.com/nao1215/webfreq/internal/dom"
	"github.com/nao1215/webfreq/internal/fetch"
	"github.com/spf13/cobra"
)

// errUsage marks command line usage errors such as unparseable flag
// values, so they exit like other invalid-input errors.
var errUsage = errors.New("invalid command line")

// NewRootCmd creates the root command for webfreq.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webfreq",
		Short: "Word and tag frequency statistics for web pages",
		Long: `webfreq fetches a web page and reports statistics about its content.

It counts how often each HTML tag appears in the document and ranks the
most frequent words in the visible text, skipping script and style blocks
and common English stop words.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flag parse failures are usage errors. The function is inherited by
	// every subcommand.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code.
// Invalid input (bad URLs, unparseable documents, bad flag values)
// exits with 2; network and other runtime failures exit with 1.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage),
		errors.Is(err, fetch.ErrInvalidURL),
		errors.Is(err, dom.ErrParse),
		errors.Is(err, config.ErrNoTarget),
		errors.Is(err, config.ErrInvalidTopN),
		errors.Is(err, config.ErrInvalidTimeout),
		errors.Is(err, config.ErrInvalidBatchSize),
		errors.Is(err, config.ErrConflictingReportFormats),
		errors.Is(err, config.ErrConfigNotFound):
		return 2
	default:
		return 1
	}
}
