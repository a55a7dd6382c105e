package textclean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("  a\t b\n\nc  "))
	assert.Equal(t, "a b", Normalize("a b"))
	assert.Equal(t, "", Normalize(" \n\t "))
}

func TestHeadingIsJunk(t *testing.T) {
	c := New()

	junk := []string{
		"Cookie Notice",
		"Note on the use of cookies",
		"Site Navigation",
		"Service menu",
		"You are here:",
		"Search",
		"Imprint",
		"Service",
		"Topics",
		"",
		"   ",
	}
	for _, h := range junk {
		assert.True(t, c.HeadingIsJunk(h), "heading %q should be junk", h)
	}

	kept := []string{
		"Entry and residence",
		"Asylum procedure",
		"Competent authorities",
		// "Service" only condemns the bare block heading.
		"Service abroad for German nationals",
	}
	for _, h := range kept {
		assert.False(t, c.HeadingIsJunk(h), "heading %q should be kept", h)
	}
}

func TestSectionIsJunk(t *testing.T) {
	c := New()

	t.Run("junk heading condemns any text", func(t *testing.T) {
		assert.True(t, c.SectionIsJunk("Cookie Notice", strings.Repeat("useful words ", 50)))
	})

	t.Run("junk body text", func(t *testing.T) {
		assert.True(t, c.SectionIsJunk("Visa information", "Cookies make it easier for us to provide you with our services."))
		assert.True(t, c.SectionIsJunk("Visa information", "Follow us on Facebook and Instagram"))
	})

	t.Run("empty body is junk", func(t *testing.T) {
		assert.True(t, c.SectionIsJunk("Visa information", "   "))
	})

	t.Run("regular section survives", func(t *testing.T) {
		assert.False(t, c.SectionIsJunk("Visa information", "Nationals of third countries require a visa for stays exceeding 90 days."))
	})
}

func TestStripInlineJunk(t *testing.T) {
	c := New()

	t.Run("drops url-only lines", func(t *testing.T) {
		in := "Useful sentence one.\nhttps://example.gov/some/page\nUseful sentence two."
		assert.Equal(t, "Useful sentence one.\nUseful sentence two.", c.StripInlineJunk(in))
	})

	t.Run("drops cookie lines", func(t *testing.T) {
		in := "Keep this.\nCookies make it easier for us to provide you with our services.\nAnd this."
		assert.Equal(t, "Keep this.\nAnd this.", c.StripInlineJunk(in))
	})

	t.Run("drops language switchers", func(t *testing.T) {
		in := "Keep this.\nDeutsch English Türkçe Русский"
		assert.Equal(t, "Keep this.", c.StripInlineJunk(in))
	})

	t.Run("keeps a sentence mentioning two languages", func(t *testing.T) {
		in := "The form is available in English and Deutsch versions."
		assert.Equal(t, in, c.StripInlineJunk(in))
	})

	t.Run("drops go-to navigation aids", func(t *testing.T) {
		in := "Go to: main content\nActual paragraph text."
		assert.Equal(t, "Actual paragraph text.", c.StripInlineJunk(in))
	})

	t.Run("normalises curly quotes", func(t *testing.T) {
		assert.Equal(t, `A "quoted" word.`, c.StripInlineJunk("A “quoted” word."))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", c.StripInlineJunk(""))
	})
}

func TestDedupeParagraphs(t *testing.T) {
	c := New()

	t.Run("removes exact repeats keeping first-seen order", func(t *testing.T) {
		in := "First paragraph.\n\nSecond paragraph.\n\nFirst paragraph."
		assert.Equal(t, "First paragraph.\n\nSecond paragraph.", c.DedupeParagraphs(in))
	})

	t.Run("comparison ignores case and whitespace", func(t *testing.T) {
		in := "Repeated   teaser block.\n\nREPEATED TEASER BLOCK."
		assert.Equal(t, "Repeated   teaser block.", c.DedupeParagraphs(in))
	})

	t.Run("idempotent", func(t *testing.T) {
		in := "One.\n\nTwo.\n\nOne."
		once := c.DedupeParagraphs(in)
		assert.Equal(t, once, c.DedupeParagraphs(once))
	})
}

func TestClean(t *testing.T) {
	c := New()

	t.Run("junk section is rejected", func(t *testing.T) {
		_, ok := c.Clean("Cookie Notice", strings.Repeat("long enough text ", 20))
		assert.False(t, ok)
	})

	t.Run("length floor is in runes", func(t *testing.T) {
		// 79 runes fails, 80 survives.
		base := strings.Repeat("ü", 79)
		_, ok := c.Clean("Visa information", base)
		assert.False(t, ok)

		text, ok := c.Clean("Visa information", base+"ü")
		require.True(t, ok)
		assert.Equal(t, 80, len([]rune(text)))
	})

	t.Run("full pass strips and normalises", func(t *testing.T) {
		in := "Applicants must submit the completed form together with a valid travel document.\nhttps://example.gov/forms\nProcessing usually takes several weeks from the date of submission."
		text, ok := c.Clean("Application", in)
		require.True(t, ok)
		assert.Equal(t, "Applicants must submit the completed form together with a valid travel document. Processing usually takes several weeks from the date of submission.", text)
	})
}

func TestCompileRules(t *testing.T) {
	rules, err := CompileRules([]string{`\bfoo\b`, `^bar$`})
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.True(t, rules[0].Match("some FOO here"))
	assert.False(t, rules[1].Match("bar baz"))

	_, err = CompileRules([]string{`(`})
	assert.Error(t, err)
}
