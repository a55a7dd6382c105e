// Package records turns chunks into persistable, provenance-carrying
// chunk records.
package records

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/groundplane/webrag/internal/core/domain"
)

var nonAlnumRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowers the heading, replaces runs of non-alphanumeric
// characters with single underscores, and trims the ends. Headings that
// slug away to nothing become "main".
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRE.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "main"
	}
	return s
}

// ChunkID builds the corpus-wide unique chunk identifier. Uniqueness
// follows from source id uniqueness plus the per-section sequence
// number, which starts at 1.
func ChunkID(sourceID, heading string, seq int) string {
	return fmt.Sprintf("%s__%s__%04d", sourceID, Slugify(heading), seq)
}

// Assemble zips a section's chunks with document and source metadata
// into immutable chunk records, in chunk order.
func Assemble(meta domain.SourceMetadata, title, url, heading string, chunks []domain.Chunk) []domain.ChunkRecord {
	out := make([]domain.ChunkRecord, 0, len(chunks))
	for i, c := range chunks {
		out = append(out, domain.ChunkRecord{
			ChunkID:        ChunkID(meta.SourceID, heading, i+1),
			SourceID:       meta.SourceID,
			Title:          title,
			Section:        heading,
			AuthorityLevel: meta.AuthorityLevel,
			Jurisdiction:   meta.Jurisdiction,
			DocumentType:   meta.DocumentType,
			URL:            url,
			Text:           c.Text,
		})
	}
	return out
}
