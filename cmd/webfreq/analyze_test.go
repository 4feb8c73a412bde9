package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/webfreq/internal/config"
	"github.com/nao1215/webfreq/internal/fetch"
)

// TestNewAnalyzeCmd tests the analyze command creation.
func TestNewAnalyzeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"top", "timeout", "batch", "config", "json", "markdown", "output", "no-save"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("missing flag %q", name)
			}
		}
	})

	t.Run("top default", func(t *testing.T) {
		t.Parallel()

		flag := cmd.Flags().Lookup("top")
		if flag.DefValue != "100" {
			t.Errorf("top default = %q, want %q", flag.DefValue, "100")
		}
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}

		if cfg.TopN != config.DefaultTopN {
			t.Errorf("TopN = %d, want %d", cfg.TopN, config.DefaultTopN)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("Timeout = %v, want %v", cfg.Timeout, config.DefaultTimeout)
		}
		if !cfg.SaveToDB {
			t.Error("SaveToDB = false, want true by default")
		}
		if len(cfg.Targets) != 1 || cfg.Targets[0] != "https://example.com" {
			t.Errorf("Targets = %v, want [https://example.com]", cfg.Targets)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		args := []string{"--top", "20", "--timeout", "5s", "--json", "--no-save"}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}

		if cfg.TopN != 20 {
			t.Errorf("TopN = %d, want 20", cfg.TopN)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
		}
		if !cfg.JSONReport {
			t.Error("JSONReport = false, want true")
		}
		if cfg.SaveToDB {
			t.Error("SaveToDB = true, want false with --no-save")
		}
	})

	t.Run("explicit missing config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd, []string{"https://example.com"}); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("buildConfig() = %v, want %v", err, config.ErrConfigNotFound)
		}
	})

	t.Run("config file top applies without flag", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("analysis:\n  top: 7\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.TopN != 7 {
			t.Errorf("TopN = %d, want 7 from config file", cfg.TopN)
		}
	})

	t.Run("negative config file top requests zero words", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("analysis:\n  top: -1\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.TopN != 0 {
			t.Errorf("TopN = %d, want 0 for negative config value", cfg.TopN)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("top flag wins over config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("analysis:\n  top: 7\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--config", path, "--top", "3"}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.TopN != 3 {
			t.Errorf("TopN = %d, want 3 from flag", cfg.TopN)
		}
	})
}

func TestSiteConfigForTarget(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.File.Defaults = config.SiteConfig{UserAgent: "default-agent"}
	cfg.File.Sites["example.com"] = config.SiteConfig{Cookie: "session=abc"}

	t.Run("host extracted from url", func(t *testing.T) {
		t.Parallel()

		got := siteConfigForTarget(cfg, "https://example.com/page?q=1")
		if got.Cookie != "session=abc" {
			t.Errorf("Cookie = %q, want %q", got.Cookie, "session=abc")
		}
		if got.UserAgent != "default-agent" {
			t.Errorf("UserAgent = %q, want %q", got.UserAgent, "default-agent")
		}
	})

	t.Run("empty target uses defaults", func(t *testing.T) {
		t.Parallel()

		got := siteConfigForTarget(cfg, "")
		if got.Cookie != "" {
			t.Errorf("Cookie = %q, want empty", got.Cookie)
		}
		if got.UserAgent != "default-agent" {
			t.Errorf("UserAgent = %q, want %q", got.UserAgent, "default-agent")
		}
	})
}

// TestRunBatchAnalyzeErrorKind verifies that a batch failure surfaces the
// wrapped error chain, so the exit code matches a sequential run of the
// same targets.
func TestRunBatchAnalyzeErrorKind(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Targets = []string{"not-a-url", "ftp://example.com/page"}
	cfg.BatchSize = 2
	cfg.SaveToDB = false

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := runBatchAnalyze(context.Background(), cfg, nil, logger)
	if err == nil {
		t.Fatal("expected an error for invalid URLs")
	}
	if !errors.Is(err, fetch.ErrInvalidURL) {
		t.Errorf("error %v does not wrap %v", err, fetch.ErrInvalidURL)
	}
	if got := exitCode(err); got != 2 {
		t.Errorf("exitCode() = %d, want 2", got)
	}
}
