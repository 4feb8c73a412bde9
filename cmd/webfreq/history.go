package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nao1215/webfreq/internal/config"
	"github.com/nao1215/webfreq/internal/database"
	"github.com/nao1215/webfreq/internal/model"
	"github.com/nao1215/webfreq/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command inspects past analyses stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Inspect past analyses stored in the database",
		Long: `History lists, shows and compares analyses recorded by 'webfreq analyze'.

Every analysis is saved to a local SQLite database (unless --no-save was
given), so earlier runs of the same page can be listed, re-rendered and
compared against each other.

Examples:
  # List all analyzed URLs in the database
  webfreq history --list-urls

  # List the analysis history for a page
  webfreq history https://example.com

  # Re-render a stored report by ID (use the listing to find IDs)
  webfreq history --show-id 5

  # Compare the latest two analyses of a page
  webfreq history --diff https://example.com

  # Output the comparison in JSON format
  webfreq history --diff --json https://example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-urls", "L", false,
		"List all analyzed URLs in the database")
	cmd.Flags().Int64P("show-id", "i", 0,
		"Show the stored report with the given ID")
	cmd.Flags().BoolP("diff", "d", false,
		"Compare the latest two analyses of the given URL")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listURLs, err := cmd.Flags().GetBool("list-urls")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetInt64("show-id")
	if err != nil {
		return err
	}
	diff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so bad invocations
	// don't create an empty database file.
	var targetURL string
	if len(args) > 0 {
		targetURL = args[0]
	}
	if !listURLs && showID == 0 && targetURL == "" {
		return errors.New("a URL is required (use --list-urls to see analyzed pages)")
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	switch {
	case listURLs:
		return listAnalyzedURLs(ctx, db)
	case showID != 0:
		return showStoredReport(ctx, db, showID, jsonOutput)
	case diff:
		return diffLatestReports(ctx, db, targetURL, jsonOutput)
	default:
		return listAnalysisHistory(ctx, db, targetURL)
	}
}

// listAnalyzedURLs lists all URLs that have analyses in the database.
func listAnalyzedURLs(ctx context.Context, db *database.HistoryDB) error {
	urls, err := db.ListURLs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list urls: %w", err)
	}

	if len(urls) == 0 {
		fmt.Println("No analyzed pages found in the database.")
		fmt.Println("\nUse 'webfreq analyze <url>' to analyze a page.")
		return nil
	}

	fmt.Printf("Analyzed pages (%d):\n\n", len(urls))
	for _, url := range urls {
		fmt.Printf("  %s\n", url)
	}
	fmt.Println("\nUse 'webfreq history <url>' to see analysis history for a page.")

	return nil
}

// listAnalysisHistory lists all analyses for a specific URL.
func listAnalysisHistory(ctx context.Context, db *database.HistoryDB, url string) error {
	history, err := db.History(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(history) == 0 {
		fmt.Printf("No analysis history found for %s\n", url)
		fmt.Println("\nUse 'webfreq analyze' to analyze this page.")
		return nil
	}

	fmt.Printf("Analysis history for %s (%d analyses):\n\n", url, len(history))
	fmt.Printf("  %-6s  %-20s  %-8s  %-10s  %-8s\n", "ID", "Date", "Status", "Elements", "Words")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range history {
		fmt.Printf("  %-6d  %-20s  %-8d  %-10d  %-8d\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.StatusCode,
			meta.TotalElements,
			meta.DistinctWords,
		)
	}

	fmt.Println("\nUse 'webfreq history --show-id <id>' to re-render a stored report.")
	fmt.Println("Use 'webfreq history --diff <url>' to compare the latest two analyses.")

	return nil
}

// showStoredReport re-renders a stored report by its database ID.
func showStoredReport(ctx context.Context, db *database.HistoryDB, id int64, jsonOutput bool) error {
	stored, err := db.GetReportByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}
	if stored == nil {
		return fmt.Errorf("no report found with ID %d", id)
	}

	var writer report.Writer
	if jsonOutput {
		writer = report.NewJSONWriter(os.Stdout)
	} else {
		writer = report.NewSimpleWriter(os.Stdout)
	}

	_, err = writer.Write(stored)
	return err
}

// WordChange describes how one word's count changed between analyses.
type WordChange struct {
	// Word is the changed word.
	Word string `json:"word"`

	// PreviousCount is the count in the older analysis.
	PreviousCount int `json:"previous_count"`

	// CurrentCount is the count in the newer analysis.
	CurrentCount int `json:"current_count"`
}

// AnalysisSummary contains metadata identifying one side of a comparison.
type AnalysisSummary struct {
	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// TotalElements is the number of elements in the document.
	TotalElements int `json:"total_elements"`

	// TotalTokens is the number of counted word tokens.
	TotalTokens int `json:"total_tokens"`

	// DistinctWords is the number of distinct counted words.
	DistinctWords int `json:"distinct_words"`
}

// ComparisonResult holds the result of comparing two analyses of a page.
type ComparisonResult struct {
	// URL is the compared page.
	URL string `json:"url"`

	// Previous summarizes the older analysis.
	Previous AnalysisSummary `json:"previous"`

	// Current summarizes the newer analysis.
	Current AnalysisSummary `json:"current"`

	// NewWords appear in the current top words but not the previous.
	NewWords []string `json:"new_words"`

	// DroppedWords appear in the previous top words but not the current.
	DroppedWords []string `json:"dropped_words"`

	// ChangedWords are words whose count changed between the analyses.
	ChangedWords []WordChange `json:"changed_words"`

	// NewTags appear in the current document but not the previous.
	NewTags []string `json:"new_tags"`

	// DroppedTags appear in the previous document but not the current.
	DroppedTags []string `json:"dropped_tags"`
}

// diffLatestReports compares the latest two analyses of a URL.
func diffLatestReports(ctx context.Context, db *database.HistoryDB, url string, jsonOutput bool) error {
	reports, err := db.LatestReports(ctx, url, 2)
	if err != nil {
		return fmt.Errorf("failed to get latest reports: %w", err)
	}
	if len(reports) == 0 {
		return fmt.Errorf("no analysis history found for %s", url)
	}
	if len(reports) < 2 {
		return fmt.Errorf("at least 2 analyses are required for comparison (found %d)", len(reports))
	}

	comparison := compareReports(reports[1], reports[0])

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(comparison)
	}
	return outputComparisonText(comparison)
}

// compareReports builds a ComparisonResult from an older and newer report.
func compareReports(previous, current *model.Report) *ComparisonResult {
	result := &ComparisonResult{
		URL: current.URL,
		Previous: AnalysisSummary{
			AnalyzedAt:    previous.AnalyzedAt,
			TotalElements: previous.TotalElements,
			TotalTokens:   previous.TotalTokens,
			DistinctWords: previous.DistinctWords,
		},
		Current: AnalysisSummary{
			AnalyzedAt:    current.AnalyzedAt,
			TotalElements: current.TotalElements,
			TotalTokens:   current.TotalTokens,
			DistinctWords: current.DistinctWords,
		},
		NewWords:     []string{},
		DroppedWords: []string{},
		ChangedWords: []WordChange{},
		NewTags:      []string{},
		DroppedTags:  []string{},
	}

	prevWords := frequencyMap(previous.WordFrequencies)
	currWords := frequencyMap(current.WordFrequencies)

	for _, entry := range current.WordFrequencies {
		prevCount, ok := prevWords[entry.Name]
		switch {
		case !ok:
			result.NewWords = append(result.NewWords, entry.Name)
		case prevCount != entry.Count:
			result.ChangedWords = append(result.ChangedWords, WordChange{
				Word:          entry.Name,
				PreviousCount: prevCount,
				CurrentCount:  entry.Count,
			})
		}
	}
	for _, entry := range previous.WordFrequencies {
		if _, ok := currWords[entry.Name]; !ok {
			result.DroppedWords = append(result.DroppedWords, entry.Name)
		}
	}

	prevTags := frequencyMap(previous.TagFrequencies)
	currTags := frequencyMap(current.TagFrequencies)

	for _, entry := range current.TagFrequencies {
		if _, ok := prevTags[entry.Name]; !ok {
			result.NewTags = append(result.NewTags, entry.Name)
		}
	}
	for _, entry := range previous.TagFrequencies {
		if _, ok := currTags[entry.Name]; !ok {
			result.DroppedTags = append(result.DroppedTags, entry.Name)
		}
	}

	return result
}

// frequencyMap converts a frequency slice to a name-to-count map.
func frequencyMap(entries []model.FrequencyEntry) map[string]int {
	m := make(map[string]int, len(entries))
	for _, entry := range entries {
		m[entry.Name] = entry.Count
	}
	return m
}

// outputComparisonText prints a comparison in human-readable form.
func outputComparisonText(c *ComparisonResult) error {
	header := "Comparison for " + c.URL
	fmt.Println(header)
	fmt.Println(strings.Repeat("=", len(header)))
	fmt.Println()

	fmt.Printf("Previous analysis: %s (%d tokens, %d distinct words, %d elements)\n",
		c.Previous.AnalyzedAt.Format("2006-01-02 15:04:05"),
		c.Previous.TotalTokens, c.Previous.DistinctWords, c.Previous.TotalElements)
	fmt.Printf("Current analysis:  %s (%d tokens, %d distinct words, %d elements)\n",
		c.Current.AnalyzedAt.Format("2006-01-02 15:04:05"),
		c.Current.TotalTokens, c.Current.DistinctWords, c.Current.TotalElements)
	fmt.Println()

	if len(c.NewWords) == 0 && len(c.DroppedWords) == 0 &&
		len(c.ChangedWords) == 0 && len(c.NewTags) == 0 && len(c.DroppedTags) == 0 {
		fmt.Println("No changes detected between the two analyses.")
		return nil
	}

	if len(c.NewWords) > 0 {
		fmt.Printf("New words (%d): %s\n", len(c.NewWords), strings.Join(c.NewWords, ", "))
	}
	if len(c.DroppedWords) > 0 {
		fmt.Printf("Dropped words (%d): %s\n", len(c.DroppedWords), strings.Join(c.DroppedWords, ", "))
	}
	if len(c.ChangedWords) > 0 {
		fmt.Printf("Changed word counts (%d):\n", len(c.ChangedWords))
		for _, change := range c.ChangedWords {
			fmt.Printf("  %-20s %6d -> %d\n", change.Word, change.PreviousCount, change.CurrentCount)
		}
	}
	if len(c.NewTags) > 0 {
		fmt.Printf("New tags (%d): %s\n", len(c.NewTags), strings.Join(c.NewTags, ", "))
	}
	if len(c.DroppedTags) > 0 {
		fmt.Printf("Dropped tags (%d): %s\n", len(c.DroppedTags), strings.Join(c.DroppedTags, ", "))
	}

	return nil
}
