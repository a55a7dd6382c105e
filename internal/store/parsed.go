package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/groundplane/webrag/internal/core/domain"
)

// WriteParsed persists one parsed document as {source_id}.json in dir.
func WriteParsed(dir string, doc *domain.ParsedDocument) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create parsed dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode parsed %s: %w", doc.SourceID, err)
	}

	path := filepath.Join(dir, doc.SourceID+".json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write parsed %s: %w", doc.SourceID, err)
	}
	return path, nil
}

// ReadParsed loads one parsed document file.
func ReadParsed(path string) (*domain.ParsedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parsed doc: %w", err)
	}
	var doc domain.ParsedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode parsed doc %s: %w", path, err)
	}
	return &doc, nil
}

// ListParsed returns the parsed document files in dir in sorted order.
// Stable file order keeps chunk output deterministic run to run.
func ListParsed(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list parsed dir: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}
