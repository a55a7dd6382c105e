// Package sources loads the tabular source-metadata store that every
// document in the pipeline must resolve against.
package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/groundplane/webrag/internal/core/domain"
)

// Required columns of the sources table. A missing column is a
// configuration error and aborts before any processing starts.
var requiredColumns = []string{"source_id", "title", "document_type", "url"}

// Table is the read-only source-metadata lookup, keyed by source id.
type Table struct {
	byID  map[string]domain.SourceMetadata
	order []string
}

// Load reads the sources CSV at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sources table: %w", domain.ErrInvalidConfig, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a sources table from r.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read sources header: %w", domain.ErrInvalidConfig, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: sources table missing columns: %s",
			domain.ErrInvalidConfig, strings.Join(missing, ", "))
	}

	t := &Table{byID: make(map[string]domain.SourceMetadata)}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sources row: %w", err)
		}

		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		orUnknown := func(s string) string {
			if s == "" {
				return "unknown"
			}
			return s
		}

		m := domain.SourceMetadata{
			SourceID:       get("source_id"),
			Title:          get("title"),
			DocumentType:   get("document_type"),
			URL:            get("url"),
			AuthorityLevel: orUnknown(get("authority_level")),
			Jurisdiction:   orUnknown(get("jurisdiction")),
		}
		if m.SourceID == "" {
			continue
		}
		if _, dup := t.byID[m.SourceID]; !dup {
			t.order = append(t.order, m.SourceID)
		}
		t.byID[m.SourceID] = m
	}
	return t, nil
}

// Get resolves a source id. The second return is false when the id has
// no row, which callers treat as fatal for the affected stage.
func (t *Table) Get(sourceID string) (domain.SourceMetadata, bool) {
	m, ok := t.byID[sourceID]
	return m, ok
}

// Webpages returns the sources whose raw content lives in the HTML
// store, in table order.
func (t *Table) Webpages() []domain.SourceMetadata {
	var out []domain.SourceMetadata
	for _, id := range t.order {
		if m := t.byID[id]; m.IsWebpage() {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.byID)
}
