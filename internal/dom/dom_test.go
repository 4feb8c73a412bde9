package dom

import (
	"strings"
	"testing"
)

// TestParse tests conversion of HTML into the reduced document tree.
func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("builds element and text nodes", func(t *testing.T) {
		t.Parallel()

		root, err := Parse(strings.NewReader(`<html><body><p id="x">hello</p></body></html>`))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		if root.Type != DocumentNode {
			t.Errorf("expected document root, got type %d", root.Type)
		}

		var p *Node
		Walk(root, func(n *Node) bool {
			if n.Type == ElementNode && n.Name == "p" {
				p = n
			}
			return true
		})

		if p == nil {
			t.Fatal("expected to find <p> element")
		}
		if len(p.Attr) != 1 || p.Attr[0].Key != "id" || p.Attr[0].Val != "x" {
			t.Errorf("unexpected attributes: %v", p.Attr)
		}
		if len(p.Children) != 1 || p.Children[0].Type != TextNode || p.Children[0].Data != "hello" {
			t.Errorf("unexpected children: %+v", p.Children)
		}
	})

	t.Run("lower-cases tag names", func(t *testing.T) {
		t.Parallel()

		root, err := Parse(strings.NewReader(`<HTML><BODY><DIV>x</DIV></BODY></HTML>`))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		found := false
		Walk(root, func(n *Node) bool {
			if n.Type == ElementNode && n.Name == "div" {
				found = true
			}
			return true
		})
		if !found {
			t.Error("expected <DIV> to be normalized to 'div'")
		}
	})

	t.Run("drops comments and doctypes", func(t *testing.T) {
		t.Parallel()

		root, err := Parse(strings.NewReader(`<!DOCTYPE html><html><body><!-- hidden --><p>ok</p></body></html>`))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		Walk(root, func(n *Node) bool {
			if n.Type == TextNode && strings.Contains(n.Data, "hidden") {
				t.Errorf("comment leaked into tree: %q", n.Data)
			}
			return true
		})
	})

	t.Run("handles malformed markup without error", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse(strings.NewReader(`<p>unclosed <b>nested`)); err != nil {
			t.Errorf("expected malformed markup to parse, got %v", err)
		}
	})
}

// TestWalk verifies document-order traversal and subtree skipping.
func TestWalk(t *testing.T) {
	t.Parallel()

	t.Run("visits elements in pre-order", func(t *testing.T) {
		t.Parallel()

		root, err := Parse(strings.NewReader(`<html><head></head><body><div><span>a</span></div><p>b</p></body></html>`))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		var names []string
		Walk(root, func(n *Node) bool {
			if n.Type == ElementNode {
				names = append(names, n.Name)
			}
			return true
		})

		want := []string{"html", "head", "body", "div", "span", "p"}
		if len(names) != len(want) {
			t.Fatalf("expected %d elements, got %d: %v", len(want), len(names), names)
		}
		for i, name := range want {
			if names[i] != name {
				t.Errorf("position %d: expected %q, got %q", i, name, names[i])
			}
		}
	})

	t.Run("skips subtree when fn returns false", func(t *testing.T) {
		t.Parallel()

		root, err := Parse(strings.NewReader(`<html><body><div><span>inner</span></div></body></html>`))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		Walk(root, func(n *Node) bool {
			if n.Type == ElementNode && n.Name == "div" {
				return false
			}
			if n.Type == ElementNode && n.Name == "span" {
				t.Error("span should have been skipped with its parent div")
			}
			return true
		})
	})

	t.Run("nil node is a no-op", func(t *testing.T) {
		t.Parallel()

		Walk(nil, func(*Node) bool {
			t.Error("fn should not be called for nil node")
			return true
		})
	})
}

// TestTitle tests extraction of the document title.
func TestTitle(t *testing.T) {
	t.Parallel()

	t.Run("returns trimmed title text", func(t *testing.T) {
		t.Parallel()

		root, err := Parse(strings.NewReader(`<html><head><title>  Example Page </title></head><body></body></html>`))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		if got := Title(root); got != "Example Page" {
			t.Errorf("expected 'Example Page', got %q", got)
		}
	})

	t.Run("returns empty string without title", func(t *testing.T) {
		t.Parallel()

		root, err := Parse(strings.NewReader(`<html><body><p>no title</p></body></html>`))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		if got := Title(root); got != "" {
			t.Errorf("expected empty title, got %q", got)
		}
	})
}
