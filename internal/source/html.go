package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/casebrief/internal/model"
)

// HTMLLoader reads the visible text of an HTML document as one page
type HTMLLoader struct{}

// Load parses the document and returns its visible text
func (l *HTMLLoader) Load(ctx context.Context, path string) ([]model.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open html: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return appendPage(nil, 1, visibleText(doc)), nil
}

// visibleText extracts text nodes, skipping scripts and styles. Block
// elements end with a newline so sentence boundaries survive.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "li", "br", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
				buf.WriteString("\n")
			}
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}
