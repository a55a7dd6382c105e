package extract

import (
	"regexp"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/groundplane/webrag/internal/textclean"
)

var contentClassRE = regexp.MustCompile(`(?i)(content|main|page-content|article)`)

// pickMainContainer gathers reasonable content-container candidates and
// picks the one that most likely holds the full article text. Taking the
// first candidate blindly tends to select an overly narrow wrapper and
// silently drop sections, so candidates are scored instead.
func pickMainContainer(doc *goquery.Document) *goquery.Selection {
	var candidates []*goquery.Selection

	add := func(s *goquery.Selection) {
		if s != nil && s.Length() > 0 {
			candidates = append(candidates, s)
		}
	}

	add(doc.Find("main").First())
	add(doc.Find("#content").First())
	add(doc.Find("#main").First())
	add(firstDivWithContentClass(doc))
	add(doc.Find("article").First())
	add(doc.Find("body").First())

	if len(candidates) == 0 {
		return doc.Selection
	}

	// More h2/h3 headings wins; total text length breaks ties.
	best := candidates[0]
	bestH, bestLen := scoreContainer(best)
	for _, c := range candidates[1:] {
		h, l := scoreContainer(c)
		if h > bestH || (h == bestH && l > bestLen) {
			best, bestH, bestLen = c, h, l
		}
	}
	return best
}

func firstDivWithContentClass(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("div[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if contentClassRE.MatchString(s.AttrOr("class", "")) {
			found = s
			return false
		}
		return true
	})
	return found
}

func scoreContainer(s *goquery.Selection) (headings, textLen int) {
	headings = s.Find("h2, h3").Length()
	textLen = utf8.RuneCountInString(textclean.Normalize(nodeText(s)))
	return headings, textLen
}
