package main

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/nao1215/webfreq/internal/config"
	"github.com/nao1215/webfreq/internal/dom"
	"github.com/nao1215/webfreq/internal/fetch"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "webfreq" {
			t.Errorf("expected use 'webfreq', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()

		hasAnalyze := false
		hasHistory := false
		hasInit := false
		for _, sub := range cmd.Commands() {
			switch sub.Use {
			case "analyze <url> [url...]":
				hasAnalyze = true
			case "history [url]":
				hasHistory = true
			case "init":
				hasInit = true
			}
		}
		if !hasAnalyze {
			t.Error("expected analyze subcommand")
		}
		if !hasHistory {
			t.Error("expected history subcommand")
		}
		if !hasInit {
			t.Error("expected init subcommand")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid url", err: fetch.ErrInvalidURL, want: 2},
		{name: "wrapped invalid url", err: errors.Join(errors.New("context"), fetch.ErrInvalidURL), want: 2},
		{name: "parse error", err: dom.ErrParse, want: 2},
		{name: "no target", err: config.ErrNoTarget, want: 2},
		{name: "negative top", err: config.ErrInvalidTopN, want: 2},
		{name: "missing config file", err: config.ErrConfigNotFound, want: 2},
		{name: "usage error", err: errUsage, want: 2},
		{name: "batch analysis failure keeps sentinel", err: fmt.Errorf("analysis of %s failed: %w", "http://x", fmt.Errorf("%w: %q", fetch.ErrInvalidURL, "http://x")), want: 2},
		{name: "http status error", err: fetch.ErrHTTPStatus, want: 1},
		{name: "generic error", err: errors.New("connection refused"), want: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// TestFlagParseErrorExitCode verifies that an unparseable flag value is
// treated as invalid input rather than a runtime failure.
func TestFlagParseErrorExitCode(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"analyze", "--top", "many", "https://example.com"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for a non-integer --top value")
	}
	if !errors.Is(err, errUsage) {
		t.Errorf("error %v does not wrap errUsage", err)
	}
	if got := exitCode(err); got != 2 {
		t.Errorf("exitCode() = %d, want 2", got)
	}
}
