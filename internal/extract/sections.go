package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/textclean"
)

// Headings that start a new section. Expand if h4+ ever matters.
var headingTags = map[string]bool{"h1": true, "h2": true, "h3": true}

// Block-level elements whose text is collected into the current section.
// dt/dd included because definition lists often hold structured content
// on government sites.
var textTags = map[string]bool{
	"p": true, "li": true, "blockquote": true,
	"td": true, "th": true, "dt": true, "dd": true,
}

// Icon labels and single tokens are not worth collecting.
const minBlockTextLen = 5

var serviceBoxRE = regexp.MustCompile(`\bc-service-box\b`)

// isServiceBoxHeading reports whether a heading belongs to an inline
// service-box widget. CMS pages nest h2 elements inside such widgets;
// letting those start sections would flush the still-open parent
// section (for example "Competent authorities") while it is empty.
func isServiceBoxHeading(s *goquery.Selection) bool {
	if strings.Contains(s.AttrOr("class", ""), "c-service-box__heading") {
		return true
	}
	// Any heading inside a service box must not split sections.
	inBox := false
	s.ParentsFiltered("div").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if serviceBoxRE.MatchString(p.AttrOr("class", "")) {
			inBox = true
			return false
		}
		return true
	})
	return inBox
}

// extractSections walks the container in document order, starting a new
// section at each h1/h2/h3 and collecting block text in between. Nested
// service-box headings are folded into the current section's text as
// inline subheadings instead of splitting.
func extractSections(container *goquery.Selection) []domain.Section {
	var sections []domain.Section
	heading := "main"
	var parts []string

	flush := func() {
		if text := textclean.Normalize(strings.Join(parts, " ")); text != "" {
			sections = append(sections, domain.Section{Heading: heading, Text: text})
		}
	}

	container.Find("*").Each(func(_ int, el *goquery.Selection) {
		tag := goquery.NodeName(el)

		if headingTags[tag] {
			h := textclean.Normalize(nodeText(el))
			if h == "" {
				return
			}
			if isServiceBoxHeading(el) {
				parts = append(parts, h)
				return
			}
			flush()
			heading = h
			parts = nil
			return
		}

		if textTags[tag] {
			txt := textclean.Normalize(nodeText(el))
			if txt != "" && utf8.RuneCountInString(txt) >= minBlockTextLen {
				parts = append(parts, txt)
			}
		}
	})

	flush()
	return sections
}
