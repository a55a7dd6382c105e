package textclean

import "regexp"

// Rule is one junk-classification pattern with a human-readable label.
// Keeping the rule set as data means it can be tested and extended
// without touching the cleaning logic.
type Rule struct {
	Label string
	re    *regexp.Regexp
}

// Match reports whether the rule matches s.
func (r Rule) Match(s string) bool {
	return r.re.MatchString(s)
}

// CompileRules builds case-insensitive rules from raw patterns.
// The pattern doubles as the label.
func CompileRules(patterns []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{Label: p, re: re})
	}
	return rules, nil
}

// labelled compiles a rule with an explicit label, panicking on a bad
// pattern. Only used for the built-in defaults below.
func labelled(label, pattern string) Rule {
	return Rule{Label: label, re: regexp.MustCompile("(?i)" + pattern)}
}

// DefaultHeadingRules drop whole sections whose heading looks like site
// chrome. Tuned against federal agency markup; override via configuration
// when pointing the pipeline at other sites.
func DefaultHeadingRules() []Rule {
	return []Rule{
		labelled("site navigation", `\bsite navigation\b`),
		labelled("service menu", `\bservice menu\b`),
		labelled("main menu", `\bmain menu\b`),
		labelled("breadcrumb", `\byou are here\b`),
		labelled("sitemap", `\bsitemap\b`),
		labelled("search box", `\bsearch\b`),
		labelled("page functions", `\bpage functions?\b`),
		labelled("social media links", `\blink to social media\b`),
		labelled("cookie notice", `\bnote on the use of cookies\b`),
		labelled("cookies", `\bcookies?\b`),
		labelled("imprint", `\bimprint\b`),
		labelled("data protection", `\bdata protection\b`),
		labelled("accessibility statement", `\baccessibility\b`),
		labelled("user notes", `\buser notes?\b`),
		labelled("service block", `^service$`),
		labelled("topics block", `^topics$`),
		labelled("texts and articles block", `^texts and articles$`),
		labelled("further information block", `^further information$`),
		labelled("link list", `^links$`),
	}
}

// DefaultTextRules drop whole sections whose body is clearly chrome,
// promo, or cookie-banner boilerplate.
func DefaultTextRules() []Rule {
	return []Rule{
		labelled("cookie banner", `\baccept cookies\b`),
		labelled("cookie banner", `\bcookies make it easier\b`),
		labelled("navigation aid", `\bgo to:\b`),
		labelled("print widget", `\bprint page\b`),
		labelled("submenu", `\bsubmen[uü]\b`),
		labelled("social media list", `\bfacebook\b|\binstagram\b|\blinkedin\b|\bthreads\b|\bbluesky\b|\bmastodon\b|\bxing\b|\bvimeo\b`),
		labelled("footer chrome", `\bimprint\b|\bdata protection\b|\baccessibility\b|\bsitemap\b`),
		labelled("service teaser", `\bservice for citizens\b|\bservice for other authorities\b`),
		labelled("news teaser", `\bannual report\b`),
		labelled("news teaser", `\bfreedom of movement monitoring\b`),
	}
}
