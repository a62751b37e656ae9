// Package content inspects generated HTML article bodies.
package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"BlogForge/internal/ports"
)

// wordsPerMinute is the reading speed assumed for reading-time estimates.
const wordsPerMinute = 200

// Inspector extracts structural facts from HTML fragments.
type Inspector struct{}

var _ ports.HTMLInspector = (*Inspector)(nil)

// NewInspector returns a stateless inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Words counts whitespace-separated words in the rendered text.
func (i *Inspector) Words(html string) int {
	return len(strings.Fields(i.Text(html)))
}

// Sections counts top-level h2 headings.
func (i *Inspector) Sections(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0
	}
	return doc.Find("h2").Length()
}

// Text returns the plain text of the fragment with tags stripped.
func (i *Inspector) Text(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}

// ReadingTime estimates minutes to read the fragment, never below 1.
func ReadingTime(wordCount int) int {
	minutes := wordCount / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
