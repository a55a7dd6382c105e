package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundplane/webrag/internal/core/domain"
)

func doc(t *testing.T, html string) *domain.ParsedDocument {
	t.Helper()
	parsed, err := New().Extract(&domain.RawDocument{
		SourceID: "test_source",
		URL:      "https://example.gov/page",
		Title:    "Fallback Title",
		HTML:     []byte(html),
	})
	require.NoError(t, err)
	return parsed
}

func TestExtract_NilInput(t *testing.T) {
	_, err := New().Extract(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_Title(t *testing.T) {
	t.Run("from title tag", func(t *testing.T) {
		p := doc(t, `<html><head><title>  Entry and   Residence </title></head><body><p>Body text here.</p></body></html>`)
		assert.Equal(t, "Entry and Residence", p.Title)
	})

	t.Run("metadata fallback", func(t *testing.T) {
		p := doc(t, `<html><body><p>Body text here.</p></body></html>`)
		assert.Equal(t, "Fallback Title", p.Title)
	})
}

func TestExtract_Sections(t *testing.T) {
	html := `<html><body><main>
		<p>Intro paragraph before any heading appears on the page.</p>
		<h2>Visa Requirements</h2>
		<p>Nationals of third countries require a visa.</p>
		<ul><li>A valid travel document is required.</li></ul>
		<h2>Fees</h2>
		<p>The fee is 75 euros for adults.</p>
	</main></body></html>`

	p := doc(t, html)
	require.Len(t, p.Sections, 3)

	assert.Equal(t, "main", p.Sections[0].Heading)
	assert.Contains(t, p.Sections[0].Text, "Intro paragraph")

	assert.Equal(t, "Visa Requirements", p.Sections[1].Heading)
	assert.Contains(t, p.Sections[1].Text, "require a visa")
	assert.Contains(t, p.Sections[1].Text, "valid travel document")

	assert.Equal(t, "Fees", p.Sections[2].Heading)
	assert.Equal(t, "The fee is 75 euros for adults.", p.Sections[2].Text)
}

func TestExtract_InlineElementsKeepWordBoundaries(t *testing.T) {
	html := `<html><body><main>
		<h2>Fees</h2>
		<table><tr><td><a href="/visa">Visa</a>fee details listed</td></tr></table>
		<p>See <b>section 8</b>of the ordinance.</p>
	</main></body></html>`

	p := doc(t, html)
	require.Len(t, p.Sections, 1)

	s := p.Sections[0]
	assert.Contains(t, s.Text, "Visa fee details listed")
	assert.Contains(t, s.Text, "section 8 of the ordinance")
	assert.NotContains(t, s.Text, "Visafee")
}

func TestNodeText(t *testing.T) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div><span>Entry</span>and<span> Residence </span></div>`))
	require.NoError(t, err)
	assert.Equal(t, "Entry and Residence", nodeText(gq.Find("div")))
}

func TestExtract_ScriptAndStyleRemoved(t *testing.T) {
	html := `<html><body><main>
		<script>var tracking = "should never appear";</script>
		<style>p { color: red }</style>
		<p>Visible paragraph content only.</p>
	</main></body></html>`

	p := doc(t, html)
	require.Len(t, p.Sections, 1)
	assert.NotContains(t, p.Sections[0].Text, "tracking")
	assert.NotContains(t, p.Sections[0].Text, "color")
}

func TestExtract_ShortBlocksSkipped(t *testing.T) {
	html := `<html><body><main>
		<h2>Contact</h2>
		<p>OK</p>
		<p>A proper sentence with enough length.</p>
	</main></body></html>`

	p := doc(t, html)
	require.Len(t, p.Sections, 1)
	assert.Equal(t, "A proper sentence with enough length.", p.Sections[0].Text)
}

func TestExtract_ServiceBoxHeadingFoldsIn(t *testing.T) {
	html := `<html><body><main>
		<h2>Competent authorities</h2>
		<div class="c-service-box">
			<h2 class="c-service-box__heading">Foreigners Office</h2>
			<p>The local foreigners office handles residence titles.</p>
		</div>
		<p>General responsibility notes follow the widget.</p>
	</main></body></html>`

	p := doc(t, html)
	require.Len(t, p.Sections, 1)

	s := p.Sections[0]
	assert.Equal(t, "Competent authorities", s.Heading)
	// The widget heading becomes inline text instead of opening a new
	// (and prematurely flushed, empty) section.
	assert.Contains(t, s.Text, "Foreigners Office")
	assert.Contains(t, s.Text, "handles residence titles")
	assert.Contains(t, s.Text, "General responsibility notes")
}

func TestExtract_ServiceBoxAncestorWithoutClass(t *testing.T) {
	html := `<html><body><main>
		<h2>Overview</h2>
		<p>Overview text long enough to be collected.</p>
		<div class="c-service-box c-service-box--wide">
			<h3>Hotline</h3>
			<p>Call the hotline for urgent matters.</p>
		</div>
	</main></body></html>`

	p := doc(t, html)
	require.Len(t, p.Sections, 1)
	assert.Equal(t, "Overview", p.Sections[0].Heading)
	assert.Contains(t, p.Sections[0].Text, "Hotline")
}

func TestExtract_WholeContainerFallback(t *testing.T) {
	// No heading and no recognised text blocks: the page still yields
	// one section rather than vanishing.
	html := `<html><body><main><div>Bare div text without any block tags.</div></main></body></html>`

	p := doc(t, html)
	require.Len(t, p.Sections, 1)
	assert.Equal(t, "main", p.Sections[0].Heading)
	assert.Equal(t, "Bare div text without any block tags.", p.Sections[0].Text)
}

func TestExtract_EmptyHeadingIgnored(t *testing.T) {
	html := `<html><body><main>
		<h2>  </h2>
		<p>Text that belongs to the implicit main section of the page.</p>
	</main></body></html>`

	p := doc(t, html)
	require.Len(t, p.Sections, 1)
	assert.Equal(t, "main", p.Sections[0].Heading)
}

func TestPickMainContainer(t *testing.T) {
	t.Run("heading count wins over order", func(t *testing.T) {
		html := `<html><body>
			<div id="content">
				<h2>A</h2><p>First section text for the page.</p>
				<h2>B</h2><p>Second section text for the page.</p>
			</div>
		</body></html>`

		p := doc(t, html)
		require.Len(t, p.Sections, 2)
		assert.Equal(t, "A", p.Sections[0].Heading)
	})

	t.Run("content-class div recognised", func(t *testing.T) {
		html := `<html><body>
			<div class="page-content">
				<h2>Rules</h2><p>The substantive rule text lives here.</p>
			</div>
		</body></html>`

		p := doc(t, html)
		require.Len(t, p.Sections, 1)
		assert.Equal(t, "Rules", p.Sections[0].Heading)
	})
}
