package analyze

import (
	"github.com/nao1215/webfreq/internal/dom"
)

// TagNames returns the lower-cased tag name of every element in the tree,
// in document order (pre-order, depth-first, left-to-right).
//
// The whole tree is visited, including subtrees the text extractor drops:
// tag counting reflects the document structure, so <script> and <style>
// elements are counted even though their content never reaches the word
// analysis. The document-order result fixes the tie-break order of the
// ranked tag list.
func TagNames(root *dom.Node) []string {
	names := make([]string, 0, 64)
	dom.Walk(root, func(n *dom.Node) bool {
		if n.Type == dom.ElementNode {
			names = append(names, n.Name)
		}
		return true
	})
	return names
}
