// Package textclean decides which extracted sections are junk and
// normalises the ones that survive. Rules live in rules.go as data;
// this file holds the line- and paragraph-oriented cleaning passes.
package textclean

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMinSectionChars is the survival floor for a cleaned section.
// Below this the text is treated as too short to be a useful retrieval
// unit. A recall/precision trade-off, not a technical constraint.
const DefaultMinSectionChars = 80

var (
	whitespaceRE  = regexp.MustCompile(`\s+`)
	spacesTabsRE  = regexp.MustCompile(`[ \t]+`)
	urlOnlyLineRE = regexp.MustCompile(`^\s*https?://\S+\s*$`)
	goToLineRE    = regexp.MustCompile(`(?i)^\s*go to:\s*`)
	multiBlankRE  = regexp.MustCompile(`\n{3,}`)
	paraSplitRE   = regexp.MustCompile(`\n\s*\n`)

	// Language names that show up together on switcher widgets.
	langTokenRE = regexp.MustCompile(`(?i)(deutsch|english|türkçe|русский|français|العربية)`)

	cookieLineREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)cookies make it easier`),
		regexp.MustCompile(`(?i)accept cookies`),
	}
)

// Language-switcher heuristic: a short UI-ish line listing several
// languages is dropped; a sentence that happens to mention two is kept.
const (
	langSwitchMaxLineLen = 120
	langSwitchMinHits    = 3
)

// Normalize collapses all whitespace (including non-breaking spaces)
// to single spaces and trims the ends.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// Cleaner applies the junk rules and cleaning passes to sections.
type Cleaner struct {
	headingRules []Rule
	textRules    []Rule
	minChars     int
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithHeadingRules replaces the default heading rule set.
func WithHeadingRules(rules []Rule) Option {
	return func(c *Cleaner) {
		if rules != nil {
			c.headingRules = rules
		}
	}
}

// WithTextRules replaces the default text rule set.
func WithTextRules(rules []Rule) Option {
	return func(c *Cleaner) {
		if rules != nil {
			c.textRules = rules
		}
	}
}

// WithMinSectionChars sets the post-cleaning survival floor.
func WithMinSectionChars(n int) Option {
	return func(c *Cleaner) {
		if n >= 0 {
			c.minChars = n
		}
	}
}

// New creates a Cleaner with the default rule set.
func New(opts ...Option) *Cleaner {
	c := &Cleaner{
		headingRules: DefaultHeadingRules(),
		textRules:    DefaultTextRules(),
		minChars:     DefaultMinSectionChars,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HeadingIsJunk reports whether a heading denotes site chrome.
// An empty heading is junk.
func (c *Cleaner) HeadingIsJunk(heading string) bool {
	h := strings.ToLower(Normalize(heading))
	if h == "" {
		return true
	}
	for _, r := range c.headingRules {
		if r.Match(h) {
			return true
		}
	}
	return false
}

// SectionIsJunk decides whether to drop an entire section.
// Monotone with HeadingIsJunk: a junk heading condemns any text.
func (c *Cleaner) SectionIsJunk(heading, text string) bool {
	if c.HeadingIsJunk(heading) {
		return true
	}
	t := strings.ToLower(Normalize(text))
	if t == "" {
		return true
	}
	for _, r := range c.textRules {
		if r.Match(t) {
			return true
		}
	}
	return false
}

// StripInlineJunk removes common inline UI garbage inside otherwise
// useful sections: URL-only lines, cookie-banner lines, language
// switchers, and "go to:" navigation aids. Conservative by intent;
// it keeps anything that reads like an actual sentence.
func (c *Cleaner) StripInlineJunk(text string) string {
	if text == "" {
		return ""
	}

	t := strings.NewReplacer("“", `"`, "”", `"`).Replace(text)
	t = strings.ReplaceAll(t, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = spacesTabsRE.ReplaceAllString(t, " ")

	var kept []string
	for _, ln := range strings.Split(t, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		if urlOnlyLineRE.MatchString(ln) {
			continue
		}
		if isCookieLine(ln) {
			continue
		}
		if isLanguageSwitcher(ln) {
			continue
		}
		if goToLineRE.MatchString(ln) {
			continue
		}
		kept = append(kept, ln)
	}

	return strings.TrimSpace(multiBlankRE.ReplaceAllString(strings.Join(kept, "\n"), "\n\n"))
}

func isCookieLine(line string) bool {
	for _, re := range cookieLineREs {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func isLanguageSwitcher(line string) bool {
	if utf8.RuneCountInString(line) >= langSwitchMaxLineLen {
		return false
	}
	return len(langTokenRE.FindAllString(line, -1)) >= langSwitchMinHits
}

// DedupeParagraphs removes duplicate paragraphs, comparing their
// case-insensitive whitespace-normalised form and keeping first-seen
// order. Scraped pages repeat teaser blocks surprisingly often.
func (c *Cleaner) DedupeParagraphs(text string) string {
	paras := paraSplitRE.Split(text, -1)
	seen := make(map[string]struct{}, len(paras))
	var out []string
	for _, p := range paras {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(whitespaceRE.ReplaceAllString(p, " "))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return strings.TrimSpace(strings.Join(out, "\n\n"))
}

// Clean runs the full per-section pass: junk classification, inline
// stripping, paragraph dedupe, whitespace normalisation, and the
// minimum-length floor. The boolean reports whether the section
// survived; rejected sections are data-quality events, not errors.
func (c *Cleaner) Clean(heading, text string) (string, bool) {
	if c.SectionIsJunk(heading, text) {
		return "", false
	}

	t := c.StripInlineJunk(text)
	t = c.DedupeParagraphs(t)
	t = Normalize(t)

	if t == "" || utf8.RuneCountInString(t) < c.minChars {
		return "", false
	}
	return t, true
}
