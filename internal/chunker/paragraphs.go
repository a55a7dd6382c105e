package chunker

import (
	"regexp"
	"strings"
)

var (
	blankLineRE = regexp.MustCompile(`\n\s*\n`)
	sentenceRE  = regexp.MustCompile(`(?:[.?!])\s+`)
)

// SplitParagraphs splits cleaned section text into paragraphs.
// Blank-line separation is preferred; text that arrives fully
// whitespace-normalised falls back to rough sentence boundaries.
func SplitParagraphs(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	parts := trimNonEmpty(blankLineRE.Split(text, -1))
	if len(parts) >= 2 {
		return parts
	}

	// Split after sentence-ending punctuation, keeping the punctuation.
	var out []string
	rest := text
	for {
		loc := sentenceRE.FindStringIndex(rest)
		if loc == nil {
			break
		}
		out = append(out, rest[:loc[0]+1])
		rest = rest[loc[1]:]
	}
	out = append(out, rest)
	return trimNonEmpty(out)
}

func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WordCount counts whitespace-separated words, the sizing unit for
// chunk packing. A rough proxy for tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
