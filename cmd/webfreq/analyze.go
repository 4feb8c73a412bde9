package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/webfreq/internal/config"
	"github.com/nao1215/webfreq/internal/database"
	"github.com/nao1215/webfreq/internal/fetch"
	"github.com/nao1215/webfreq/internal/log"
	"github.com/nao1215/webfreq/internal/model"
	"github.com/nao1215/webfreq/internal/pipeline"
	"github.com/nao1215/webfreq/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url> [url...]",
		Short: "Fetch a web page and report tag and word frequencies",
		Long: `Analyze fetches one or more web pages and reports content statistics.

For each page it shows:
- How often each HTML tag appears in the document
- The most frequent words in the visible text

Script, style, noscript and template contents are excluded from the word
count, as are common English stop words. Words shorter than two letters
are ignored.

Examples:
  # Analyze a single page
  webfreq analyze https://example.com

  # Show only the 20 most frequent words
  webfreq analyze --top 20 https://example.com

  # Analyze several pages concurrently
  webfreq analyze https://example.com https://example.org

  # Output JSON report
  webfreq analyze --json https://example.com

  # Write a Markdown report to a file
  webfreq analyze --markdown -o report.md https://example.com

  # Use a custom configuration file
  webfreq analyze -c myconfig.yaml https://example.com

Configuration file (.webfreq) example:
  analysis:
    top: 50
    stop_words: [a, an, the]
  sites:
    example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Analysis behavior flags
	cmd.Flags().IntP("top", "t", config.DefaultTopN,
		"Number of most frequent words to show (0 shows none)")
	cmd.Flags().DurationP("timeout", "T", config.DefaultTimeout,
		"Timeout for each page fetch")

	// Batch analysis flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webfreq in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false,
		"Do not record the analysis in the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.TopN, err = cmd.Flags().GetInt("top")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from the config file.
	// If the user explicitly specified a path, error if not found.
	// If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	// The config file's top setting applies only when the flag was not
	// given on the command line. In the file zero means "not set", so a
	// negative value is how the file requests an empty word list.
	if cfg.File.Analysis.Top != 0 && !cmd.Flags().Changed("top") {
		cfg.TopN = cfg.File.Analysis.Top
		if cfg.TopN < 0 {
			cfg.TopN = 0
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Targets = args

	return cfg, nil
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Debug("starting analysis",
		"targets", cfg.Targets,
		"topN", cfg.TopN,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Debug("database opened", "dir", cfg.DBDir)
	}

	// Use the batch processor for parallel analysis when multiple URLs
	// are given.
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchAnalyze(ctx, cfg, db, logger)
	}

	return runSequentialAnalyze(ctx, cfg, db, logger)
}

// runSequentialAnalyze analyzes targets one at a time.
func runSequentialAnalyze(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	var firstErr error
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := createPipelineForTarget(cfg, logger, target)

		analysisReport := model.NewReport(target)
		startTime := time.Now()

		if err := p.Execute(ctx, analysisReport); err != nil {
			logger.Error("analysis failed", "target", target, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		logger.Debug("analysis completed",
			"target", target,
			"elapsed", time.Since(startTime).Round(time.Millisecond),
		)

		if err := outputReport(cfg, analysisReport); err != nil {
			logger.Error("report failed", "target", target, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}

		if err := saveReport(ctx, db, analysisReport, logger); err != nil {
			logger.Error("failed to save report", "target", target, "error", err)
		}
	}

	return firstErr
}

// runBatchAnalyze analyzes multiple targets concurrently using BatchProcessor.
func runBatchAnalyze(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d pages (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	// The batch processor creates one pipeline per URL, but the factory
	// has no access to the URL, so site-specific request settings cannot
	// be applied. Warn when they would matter.
	if len(cfg.File.Sites) > 0 {
		logger.Warn("batch processing uses default site config only; site-specific cookies and headers are ignored",
			"siteCount", len(cfg.File.Sites))
		fmt.Fprintf(os.Stderr, "Warning: Site-specific configurations are ignored in batch mode. Use sequential mode (--batch 1) to apply per-site settings.\n\n")
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return createPipelineForTarget(cfg, logger, "")
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	var mu sync.Mutex
	var firstErr error
	err := bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(analysisReport *model.Report, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Analysis completed: %s\n", index+1, len(cfg.Targets), analysisReport.URL)

		if analysisReport.ErrorMessage != "" {
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %s\n", analysisReport.URL, analysisReport.ErrorMessage)
			if firstErr == nil {
				// Wrap the recorded error itself so exit code
				// classification still sees the sentinel chain.
				if analysisReport.Err != nil {
					firstErr = fmt.Errorf("analysis of %s failed: %w", analysisReport.URL, analysisReport.Err)
				} else {
					firstErr = fmt.Errorf("analysis of %s failed: %s", analysisReport.URL, analysisReport.ErrorMessage)
				}
			}
			return
		}

		if err := outputReport(cfg, analysisReport); err != nil {
			logger.Error("report failed", "target", analysisReport.URL, "error", err)
		}

		if err := saveReport(ctx, db, analysisReport, logger); err != nil {
			logger.Error("failed to save report", "target", analysisReport.URL, "error", err)
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nBatch analysis completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	return firstErr
}

// createPipelineForTarget creates a pipeline configured for one URL.
// An empty target applies only the default site settings.
func createPipelineForTarget(cfg *config.Config, logger *slog.Logger, target string) *pipeline.Pipeline {
	siteConfig := siteConfigForTarget(cfg, target)

	clientOpts := []fetch.Option{
		fetch.WithTimeout(cfg.Timeout),
	}
	if siteConfig.Cookie != "" {
		clientOpts = append(clientOpts, fetch.WithCookie(siteConfig.Cookie))
	}
	if siteConfig.UserAgent != "" {
		clientOpts = append(clientOpts, fetch.WithUserAgent(siteConfig.UserAgent))
	}
	if len(siteConfig.Headers) > 0 {
		clientOpts = append(clientOpts, fetch.WithHeaders(siteConfig.Headers))
	}

	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}

	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineTopN(cfg.TopN),
	}
	if len(cfg.File.Analysis.StopWords) > 0 {
		configOpts = append(configOpts, pipeline.WithPipelineStopWords(cfg.File.Analysis.StopWords))
	}
	if len(cfg.File.Analysis.ExcludedTags) > 0 {
		configOpts = append(configOpts, pipeline.WithPipelineExcludedTags(cfg.File.Analysis.ExcludedTags))
	}

	return pipeline.DefaultPipeline(fetch.New(clientOpts...), pipelineOpts, configOpts...)
}

// siteConfigForTarget returns the merged site settings for a target URL.
func siteConfigForTarget(cfg *config.Config, target string) config.SiteConfig {
	if target == "" {
		return cfg.File.Defaults
	}

	host := target
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		host = u.Hostname()
	}
	return cfg.File.GetSiteConfig(host)
}

// outputReport outputs the analysis report in the requested format.
func outputReport(cfg *config.Config, analysisReport *model.Report) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output)
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(analysisReport)
	return err
}

// saveReport saves the analysis report to the database if enabled.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.HistoryDB, analysisReport *model.Report, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveReport(ctx, analysisReport)
	if err != nil {
		return err
	}

	logger.Debug("report saved", "id", id, "url", analysisReport.URL)
	return nil
}
