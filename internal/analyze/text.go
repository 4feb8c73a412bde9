package analyze

import (
	"html"
	"strings"

	"github.com/nao1215/webfreq/internal/dom"
)

// DefaultExcludedTags returns the tag names whose subtrees carry no
// human-visible text. Their content is markup or code, not page copy,
// so the extractor drops the entire subtree.
func DefaultExcludedTags() []string {
	return []string{"script", "style", "noscript", "template"}
}

// Extractor collects the visible text of a document tree.
//
// Design decision: The excluded tag set is configuration rather than a
// constant because test fixtures and unusual documents need custom sets.
// The zero-argument constructor applies DefaultExcludedTags.
type Extractor struct {
	// excluded maps tag names whose subtrees are dropped.
	excluded map[string]struct{}
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExcludedTags replaces the default set of non-visible tags.
// Tag names are matched case-insensitively (the tree stores lower-cased
// names, so the option lower-cases its input).
func WithExcludedTags(tags []string) ExtractorOption {
	return func(e *Extractor) {
		e.excluded = make(map[string]struct{}, len(tags))
		for _, tag := range tags {
			e.excluded[strings.ToLower(tag)] = struct{}{}
		}
	}
}

// NewExtractor creates an Extractor with the default excluded tag set.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	WithExcludedTags(DefaultExcludedTags())(e)

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// VisibleText returns the visible text of the tree rooted at root.
//
// Text nodes are collected in document order. Each piece is entity-decoded
// and trimmed of surrounding whitespace; pieces that become empty are
// dropped, and the survivors are joined with a single space. Subtrees
// rooted at an excluded tag contribute nothing, regardless of nesting
// depth. A tree without visible text yields the empty string.
func (e *Extractor) VisibleText(root *dom.Node) string {
	var pieces []string
	dom.Walk(root, func(n *dom.Node) bool {
		if n.Type == dom.ElementNode {
			if _, skip := e.excluded[n.Name]; skip {
				return false
			}
			return true
		}
		if n.Type == dom.TextNode {
			piece := strings.TrimSpace(html.UnescapeString(n.Data))
			if piece != "" {
				pieces = append(pieces, piece)
			}
		}
		return true
	})
	return strings.Join(pieces, " ")
}
