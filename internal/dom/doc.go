// Package dom provides a minimal document tree for HTML analysis.
//
// The tree is produced by parsing HTML with golang.org/x/net/html and then
// reducing the result to the two node kinds the analysis pipeline cares
// about: elements (tag name, attributes, ordered children) and text.
// Comments, doctypes, and processing instructions are discarded during
// conversion.
//
// Consumers traverse the tree with Walk, which visits nodes in document
// order (pre-order, depth-first, left-to-right) and allows whole subtrees
// to be skipped. The tree is never mutated after Parse returns.
package dom
