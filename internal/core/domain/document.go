package domain

import "strings"

// RawDocument is a fetched web page before any parsing.
// The pipeline reads one per source from the raw HTML store.
type RawDocument struct {
	// SourceID is the corpus-wide identifier from the sources table.
	SourceID string

	// URL is the original location of the page.
	URL string

	// Title is the metadata title, used when the page has no usable <title>.
	Title string

	// HTML is the raw page bytes as fetched.
	HTML []byte
}

// Section is a heading-delimited span of a document's content.
// Junk-filtering decisions are made at section granularity.
type Section struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// ParsedDocument is the persisted result of HTML section extraction,
// written as one JSON file per source.
type ParsedDocument struct {
	SourceID string    `json:"source_id"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Chunk is a word-bounded span of text within a section, the unit
// that gets embedded and retrieved.
type Chunk struct {
	Text      string
	WordCount int
}

// ChunkRecord is a chunk zipped with its document and source metadata.
// Records are immutable once written; one record per line of the chunk store.
type ChunkRecord struct {
	ChunkID        string `json:"chunk_id"`
	SourceID       string `json:"source_id"`
	Title          string `json:"title"`
	Section        string `json:"section"`
	AuthorityLevel string `json:"authority_level"`
	Jurisdiction   string `json:"jurisdiction"`
	DocumentType   string `json:"document_type"`
	URL            string `json:"url"`
	Text           string `json:"text"`
}

// SourceMetadata is one row of the sources table, keyed by SourceID.
// Optional attributes default to "unknown".
type SourceMetadata struct {
	SourceID       string
	Title          string
	DocumentType   string
	URL            string
	AuthorityLevel string
	Jurisdiction   string
}

// IsWebpage reports whether the source's raw content lives in the
// HTML store. Document type comparison is case-insensitive.
func (m SourceMetadata) IsWebpage() bool {
	return strings.EqualFold(m.DocumentType, "webpage")
}

// RetrievedChunk is the fixed record exchanged with the answer generator.
// Only Text is required; everything else is provenance for the prompt's
// META lines and the result listing.
type RetrievedChunk struct {
	Text         string
	URL          string
	DocID        string
	SourceID     string
	Section      string
	Jurisdiction string
	Authority    string
	Score        float32
	HasScore     bool
}
