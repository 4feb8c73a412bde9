package model

import (
	"time"
	"unicode/utf8"

	"github.com/nao1215/webfreq/internal/dom"
)

// MaxSnapshotSize is the maximum size of the visible-text snapshot that is
// kept on the report for persistence. Larger extracts are truncated so that
// the history database stays small while still giving enough context to
// recognize a stored analysis.
const MaxSnapshotSize = 4 * 1024 // 4 KB

// FrequencyEntry is a single (key, count) pair of a ranked frequency list.
// Entries are ordered by count descending; entries with equal counts keep
// the order in which their key was first seen during the source scan, which
// makes report output deterministic.
type FrequencyEntry struct {
	// Name is the counted key: a lower-cased tag name or word token.
	Name string `json:"name"`

	// Count is the number of occurrences. Always positive in ranked lists.
	Count int `json:"count"`
}

// Report is the result of analyzing a single web page.
//
// Design decision: We use a single struct for both the in-flight pipeline
// state and the final result rather than separate "working" and "output"
// types. The pipeline steps fill the transient fields (HTML, Document,
// VisibleText), the analysis steps derive the serializable fields from
// them, and the writers and database only read the serializable part.
type Report struct {
	// URL is the address of the analyzed page. Used as a label in report
	// output; it is never re-parsed after the fetch succeeded.
	URL string `json:"url"`

	// Title is the page title from the <title> tag, if any.
	Title string `json:"title,omitempty"`

	// AnalyzedAt is the timestamp when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// StatusCode is the HTTP response status code of the fetch.
	StatusCode int `json:"status_code,omitempty"`

	// ContentType is the MIME type reported by the server.
	ContentType string `json:"content_type,omitempty"`

	// TopN is the requested number of words for the word ranking.
	// The stored WordFrequencies list is already truncated to this value.
	TopN int `json:"top_n"`

	// TotalElements is the number of elements in the document tree.
	// Equals the sum of all counts in TagFrequencies.
	TotalElements int `json:"total_elements"`

	// TotalTokens is the number of word tokens that survived stop-word
	// filtering. Equals the sum of counts over the full word ranking
	// before truncation.
	TotalTokens int `json:"total_tokens"`

	// DistinctWords is the number of distinct words before truncation.
	DistinctWords int `json:"distinct_words"`

	// TagFrequencies ranks every tag in the document, most common first.
	// Never truncated.
	TagFrequencies []FrequencyEntry `json:"tag_frequencies"`

	// WordFrequencies ranks the visible-text words, truncated to TopN.
	WordFrequencies []FrequencyEntry `json:"word_frequencies"`

	// Snapshot is a truncated copy of the extracted visible text,
	// kept for history listings.
	Snapshot string `json:"snapshot,omitempty"`

	// ErrorMessage records a pipeline failure for persisted reports.
	ErrorMessage string `json:"error,omitempty"`

	// Err is the failure behind ErrorMessage with its wrapped chain
	// intact, so callers can classify it with errors.Is. Transient
	// pipeline state, excluded from serialization.
	Err error `json:"-"`

	// HTML is the fetched document body. Transient pipeline state,
	// excluded from serialization.
	HTML string `json:"-"`

	// Document is the parsed document tree. Transient pipeline state.
	Document *dom.Node `json:"-"`

	// VisibleText is the full extracted visible text. Transient
	// pipeline state; Snapshot holds the persisted prefix.
	VisibleText string `json:"-"`
}

// NewReport creates a Report for the given URL with the analysis timestamp
// set to now.
func NewReport(url string) *Report {
	return &Report{
		URL:             url,
		AnalyzedAt:      time.Now(),
		TagFrequencies:  make([]FrequencyEntry, 0),
		WordFrequencies: make([]FrequencyEntry, 0),
	}
}

// SetSnapshot stores text as the report snapshot, truncated to at most
// MaxSnapshotSize bytes. The cut backs up to a rune boundary so the
// snapshot is always valid UTF-8.
func (r *Report) SetSnapshot(text string) {
	if len(text) > MaxSnapshotSize {
		cut := MaxSnapshotSize
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	r.Snapshot = text
}

// TagTotal returns the sum of all tag counts. For a well-formed report this
// equals TotalElements.
func (r *Report) TagTotal() int {
	total := 0
	for _, e := range r.TagFrequencies {
		total += e.Count
	}
	return total
}

// WordTotal returns the sum of the counts in the truncated word ranking.
// This is at most TotalTokens; the two are equal when no truncation occurred.
func (r *Report) WordTotal() int {
	total := 0
	for _, e := range r.WordFrequencies {
		total += e.Count
	}
	return total
}
