package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/webfreq/internal/analyze"
	"github.com/nao1215/webfreq/internal/config"
	"github.com/nao1215/webfreq/internal/dom"
	"github.com/nao1215/webfreq/internal/fetch"
	"github.com/nao1215/webfreq/internal/model"
)

// FetchStep downloads the page at the report URL.
// It records the HTTP status, content type and decoded body on the report.
type FetchStep struct {
	// client performs the HTTP request.
	client *fetch.Client
}

// NewFetchStep creates a FetchStep using the given client.
func NewFetchStep(client *fetch.Client) *FetchStep {
	return &FetchStep{client: client}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches the page and stores the response on the report.
func (s *FetchStep) Do(ctx context.Context, report *model.Report) error {
	result, err := s.client.Fetch(ctx, report.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", report.URL, err)
	}

	report.StatusCode = result.StatusCode
	report.ContentType = result.ContentType
	report.HTML = result.Body
	return nil
}

// ParseStep parses the fetched HTML into a document tree and records
// the page title.
type ParseStep struct{}

// NewParseStep creates a ParseStep.
func NewParseStep() *ParseStep {
	return &ParseStep{}
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do parses report.HTML and stores the document tree on the report.
func (s *ParseStep) Do(_ context.Context, report *model.Report) error {
	doc, err := dom.Parse(strings.NewReader(report.HTML))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", report.URL, err)
	}

	report.Document = doc
	report.Title = dom.Title(doc)
	return nil
}

// TagFrequencyStep counts every element in the document tree.
//
// Tags are counted over the whole tree, including script and style
// elements: the tag section reports document structure, not visibility.
type TagFrequencyStep struct{}

// NewTagFrequencyStep creates a TagFrequencyStep.
func NewTagFrequencyStep() *TagFrequencyStep {
	return &TagFrequencyStep{}
}

// Name returns the step name.
func (s *TagFrequencyStep) Name() string {
	return "count-tags"
}

// Do ranks tag frequencies over the parsed document.
func (s *TagFrequencyStep) Do(_ context.Context, report *model.Report) error {
	if report.Document == nil {
		return dom.ErrParse
	}

	names := analyze.TagNames(report.Document)
	report.TotalElements = len(names)
	report.TagFrequencies = analyze.Rank(names)
	return nil
}

// WordFrequencyStep extracts the visible text, tokenizes it and ranks
// word frequencies, keeping the configured number of top entries.
type WordFrequencyStep struct {
	extractor *analyze.Extractor
	tokenizer *analyze.Tokenizer
	topN      int
}

// WordFrequencyStepOption configures a WordFrequencyStep.
type WordFrequencyStepOption func(*WordFrequencyStep)

// WithTopN sets the number of top words kept on the report.
func WithTopN(n int) WordFrequencyStepOption {
	return func(s *WordFrequencyStep) {
		s.topN = n
	}
}

// WithExtractor sets a custom text extractor.
func WithExtractor(extractor *analyze.Extractor) WordFrequencyStepOption {
	return func(s *WordFrequencyStep) {
		s.extractor = extractor
	}
}

// WithTokenizer sets a custom tokenizer.
func WithTokenizer(tokenizer *analyze.Tokenizer) WordFrequencyStepOption {
	return func(s *WordFrequencyStep) {
		s.tokenizer = tokenizer
	}
}

// NewWordFrequencyStep creates a WordFrequencyStep with default
// extraction and tokenization rules.
func NewWordFrequencyStep(opts ...WordFrequencyStepOption) *WordFrequencyStep {
	s := &WordFrequencyStep{
		extractor: analyze.NewExtractor(),
		tokenizer: analyze.NewTokenizer(),
		topN:      config.DefaultTopN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *WordFrequencyStep) Name() string {
	return "count-words"
}

// Do extracts visible text and ranks word frequencies.
func (s *WordFrequencyStep) Do(_ context.Context, report *model.Report) error {
	if report.Document == nil {
		return dom.ErrParse
	}

	report.VisibleText = s.extractor.VisibleText(report.Document)
	report.SetSnapshot(report.VisibleText)
	tokens := s.tokenizer.Tokens(report.VisibleText)
	report.TotalTokens = len(tokens)

	ranked := analyze.Rank(tokens)
	report.DistinctWords = len(ranked)
	report.TopN = s.topN
	report.WordFrequencies = analyze.TopN(ranked, s.topN)
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// TopN is the number of top words kept on the report.
	TopN int

	// StopWords replaces the default stop-word list when non-nil.
	StopWords []string

	// ExcludedTags replaces the default invisible-tag list when non-nil.
	ExcludedTags []string
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineTopN sets the number of top words kept on the report.
func WithPipelineTopN(n int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.TopN = n
	}
}

// WithPipelineStopWords replaces the default stop-word list.
func WithPipelineStopWords(words []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.StopWords = words
	}
}

// WithPipelineExcludedTags replaces the default invisible-tag list.
func WithPipelineExcludedTags(tags []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.ExcludedTags = tags
	}
}

// DefaultPipeline creates a pipeline with all analysis steps in the
// standard order: fetch, parse, count tags, count words.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineTopN, etc).
func DefaultPipeline(client *fetch.Client, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		TopN: config.DefaultTopN,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	wordOpts := []WordFrequencyStepOption{WithTopN(cfg.TopN)}
	if cfg.StopWords != nil {
		wordOpts = append(wordOpts, WithTokenizer(analyze.NewTokenizer(analyze.WithStopWords(cfg.StopWords))))
	}
	if cfg.ExcludedTags != nil {
		wordOpts = append(wordOpts, WithExtractor(analyze.NewExtractor(analyze.WithExcludedTags(cfg.ExcludedTags))))
	}

	p.AddSteps(
		NewFetchStep(client),
		NewParseStep(),
		NewTagFrequencyStep(),
		NewWordFrequencyStep(wordOpts...),
	)
	return p
}
