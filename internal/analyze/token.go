package analyze

import (
	"regexp"
	"strings"
)

// tokenPattern matches a word candidate: two or more consecutive ASCII
// letters. Digits and punctuation act as separators, and single letters
// are never tokens.
var tokenPattern = regexp.MustCompile(`[A-Za-z]{2,}`)

// DefaultStopWords returns the built-in stop-word set. It is intentionally
// minimal; callers with stricter needs supply their own list through the
// configuration file.
func DefaultStopWords() []string {
	return []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
		"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
		"to", "was", "were", "with",
	}
}

// Tokenizer splits text into normalized word tokens.
type Tokenizer struct {
	// stopWords maps lower-cased words that are excluded from output.
	stopWords map[string]struct{}
}

// TokenizerOption configures a Tokenizer.
type TokenizerOption func(*Tokenizer)

// WithStopWords replaces the default stop-word set. Words are matched
// case-insensitively against the lower-cased tokens.
func WithStopWords(words []string) TokenizerOption {
	return func(t *Tokenizer) {
		t.stopWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			t.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// NewTokenizer creates a Tokenizer with the default stop-word set.
func NewTokenizer(opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{}
	WithStopWords(DefaultStopWords())(t)

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokens returns the tokens of text in left-to-right scan order.
// Each token is a maximal ASCII-letter run of length two or more,
// lower-cased, that is not a stop-word. Tokens are not deduplicated;
// counting happens in the frequency aggregation. Text without any
// matching run yields an empty (non-nil) slice.
func (t *Tokenizer) Tokens(text string) []string {
	matches := tokenPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		word := strings.ToLower(m)
		if _, skip := t.stopWords[word]; skip {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
