package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrParse is returned when the HTML document cannot be parsed.
// golang.org/x/net/html recovers from almost any malformed markup, so in
// practice this surfaces only when the underlying reader fails.
var ErrParse = errors.New("failed to parse HTML document")

// NodeType identifies the kind of a Node.
type NodeType int

const (
	// DocumentNode is the synthetic root returned by Parse.
	// It carries no tag name and is not counted as an element.
	DocumentNode NodeType = iota

	// ElementNode is an HTML element such as <p> or <div>.
	ElementNode

	// TextNode is a run of character data.
	TextNode
)

// Attribute is a single attribute of an element node.
type Attribute struct {
	// Key is the attribute name as it appeared in the markup.
	Key string

	// Val is the attribute value.
	Val string
}

// Node is a single node of the document tree.
//
// Design decision: We expose our own node type rather than *html.Node
// because the analysis code only needs elements and text. Hiding the
// parser's richer node set keeps traversal logic simple and allows the
// parser library to be swapped without touching the analyzers.
type Node struct {
	// Type identifies whether this is the document root, an element,
	// or a text node.
	Type NodeType

	// Name is the tag name for element nodes, normalized to lower case.
	// Empty for document and text nodes.
	Name string

	// Data is the text content for text nodes. Entities are already
	// decoded by the parser; the extractor decodes once more to cover
	// double-escaped content.
	Data string

	// Attr holds the element's attributes in source order.
	// Unused by the frequency analysis but kept for completeness.
	Attr []Attribute

	// Children are the node's child nodes in document order.
	Children []*Node
}

// Parse parses HTML from r and returns the document tree.
// Malformed markup is handled by the underlying parser; Parse fails only
// when the reader itself fails.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	root := &Node{Type: DocumentNode}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if n := convert(c); n != nil {
			root.Children = append(root.Children, n)
		}
	}
	return root, nil
}

// convert translates an html.Node subtree into the reduced tree.
// Nodes other than elements and text (comments, doctypes) return nil.
func convert(n *html.Node) *Node {
	switch n.Type {
	case html.ElementNode:
		node := &Node{
			Type: ElementNode,
			Name: strings.ToLower(n.Data),
		}
		for _, a := range n.Attr {
			node.Attr = append(node.Attr, Attribute{Key: a.Key, Val: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				node.Children = append(node.Children, child)
			}
		}
		return node
	case html.TextNode:
		return &Node{Type: TextNode, Data: n.Data}
	default:
		return nil
	}
}

// Walk traverses the tree rooted at n in document order (pre-order,
// depth-first, left-to-right). fn is called for every node; returning
// false skips the node's entire subtree. Walk is nil-safe.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Title returns the text content of the first <title> element, trimmed of
// surrounding whitespace. Returns the empty string when the document has
// no title.
func Title(root *Node) string {
	var title string
	Walk(root, func(n *Node) bool {
		if title != "" {
			return false
		}
		if n.Type == ElementNode && n.Name == "title" {
			var sb strings.Builder
			for _, c := range n.Children {
				if c.Type == TextNode {
					sb.WriteString(c.Data)
				}
			}
			title = strings.TrimSpace(sb.String())
			return false
		}
		return true
	})
	return title
}
