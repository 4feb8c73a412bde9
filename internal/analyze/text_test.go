package analyze

import (
	"strings"
	"testing"

	"github.com/nao1215/webfreq/internal/dom"
)

// parseHTML is a test helper that parses HTML into a document tree.
func parseHTML(t *testing.T, s string) *dom.Node {
	t.Helper()

	root, err := dom.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("failed to parse test HTML: %v", err)
	}
	return root
}

// TestExtractorVisibleText tests visible-text extraction.
func TestExtractorVisibleText(t *testing.T) {
	t.Parallel()

	t.Run("joins text pieces with single spaces", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, `<html><body><p> Hello </p><p>world</p></body></html>`)
		got := NewExtractor().VisibleText(root)
		if got != "Hello world" {
			t.Errorf("expected 'Hello world', got %q", got)
		}
	})

	t.Run("excludes script and style subtrees", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, `<html><head><style>body{color:red}</style></head>`+
			`<body><script>var hidden = 1;</script><p>visible</p></body></html>`)
		got := NewExtractor().VisibleText(root)
		if got != "visible" {
			t.Errorf("expected 'visible', got %q", got)
		}
	})

	t.Run("excludes deeply nested non-visible content", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, `<html><body><div><div><noscript><p>never shown</p></noscript></div></div>`+
			`<p>shown</p></body></html>`)
		got := NewExtractor().VisibleText(root)
		if strings.Contains(got, "never") {
			t.Errorf("noscript content leaked into visible text: %q", got)
		}
		if got != "shown" {
			t.Errorf("expected 'shown', got %q", got)
		}
	})

	t.Run("decodes HTML entities", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, `<html><body><p>fish &amp;amp; chips</p></body></html>`)
		got := NewExtractor().VisibleText(root)
		if got != "fish & chips" {
			t.Errorf("expected 'fish & chips', got %q", got)
		}
	})

	t.Run("drops whitespace-only text nodes", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, "<html><body><div>\n\t  </div><p>a</p>\n<p>b</p></body></html>")
		got := NewExtractor().VisibleText(root)
		if got != "a b" {
			t.Errorf("expected 'a b', got %q", got)
		}
	})

	t.Run("returns empty string for all-invisible document", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, `<html><body><script>only code</script></body></html>`)
		if got := NewExtractor().VisibleText(root); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("custom excluded tags", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, `<html><body><nav>menu</nav><p>content</p></body></html>`)
		e := NewExtractor(WithExcludedTags([]string{"nav"}))
		got := e.VisibleText(root)
		if got != "content" {
			t.Errorf("expected 'content', got %q", got)
		}
	})
}
