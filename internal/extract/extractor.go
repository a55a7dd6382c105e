// Package extract walks parsed HTML and partitions the main content
// container into ordered (heading, text) sections.
package extract

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/textclean"
)

// Extractor converts raw HTML documents into sectioned parsed documents.
type Extractor struct{}

// New creates a new section extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses the raw page and produces its ordered sections.
// The page title comes from the <title> tag when present, otherwise
// from the source metadata title carried on the raw document.
func (e *Extractor) Extract(raw *domain.RawDocument) (*domain.ParsedDocument, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse html for %s: %w", raw.SourceID, err)
	}

	// Obvious boilerplate never contributes text.
	doc.Find("script, style, noscript").Remove()

	title := textclean.Normalize(doc.Find("title").First().Text())
	if title == "" {
		title = raw.Title
	}

	container := pickMainContainer(doc)
	sections := extractSections(container)

	// Unusual markup can defeat the section walk entirely; fall back to
	// the whole container as a single section rather than losing the page.
	if len(sections) == 0 {
		if full := textclean.Normalize(nodeText(container)); full != "" {
			sections = []domain.Section{{Heading: "main", Text: full}}
		}
	}

	return &domain.ParsedDocument{
		SourceID: raw.SourceID,
		URL:      raw.URL,
		Title:    title,
		Sections: sections,
	}, nil
}
