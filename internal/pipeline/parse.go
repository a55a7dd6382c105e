// Package pipeline wires the batch stages: parse, chunk, index, query.
// Documents are processed strictly one at a time in stable order so
// output is deterministic and debuggable; parallelising across source
// ids is the natural extension point but is deliberately not done.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/extract"
	"github.com/groundplane/webrag/internal/logger"
	"github.com/groundplane/webrag/internal/sources"
	"github.com/groundplane/webrag/internal/store"
)

// ParseService turns raw HTML files into parsed section documents.
type ParseService struct {
	extractor *extract.Extractor
	table     *sources.Table
	rawDir    string
	parsedDir string
}

// NewParseService creates the parse stage.
func NewParseService(table *sources.Table, rawDir, parsedDir string) *ParseService {
	return &ParseService{
		extractor: extract.New(),
		table:     table,
		rawDir:    rawDir,
		parsedDir: parsedDir,
	}
}

// Run parses every webpage source. A failing document is recorded in
// the report and skipped; one bad page never aborts the batch.
func (s *ParseService) Run() (*domain.BatchReport, error) {
	report := domain.NewBatchReport("parse")
	defer report.Finish()

	for _, meta := range s.table.Webpages() {
		doc, err := s.parseOne(meta)
		if err != nil {
			logger.Warn("parse %s: %v", meta.SourceID, err)
			report.Add(domain.DocumentResult{
				SourceID: meta.SourceID,
				Status:   domain.DocumentFailed,
				Reason:   err.Error(),
			})
			continue
		}
		logger.Info("parsed %s (%d sections)", meta.SourceID, len(doc.Sections))
		report.Add(domain.DocumentResult{
			SourceID: meta.SourceID,
			Status:   domain.DocumentOK,
			Sections: len(doc.Sections),
		})
	}
	return report, nil
}

// ParseOne parses a single source id, used by the watch command.
func (s *ParseService) ParseOne(sourceID string) (*domain.ParsedDocument, error) {
	meta, ok := s.table.Get(sourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}
	return s.parseOne(meta)
}

func (s *ParseService) parseOne(meta domain.SourceMetadata) (*domain.ParsedDocument, error) {
	rawPath := filepath.Join(s.rawDir, meta.SourceID+".html")
	html, err := os.ReadFile(rawPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingRawHTML, rawPath)
		}
		return nil, fmt.Errorf("read raw html: %w", err)
	}

	doc, err := s.extractor.Extract(&domain.RawDocument{
		SourceID: meta.SourceID,
		URL:      meta.URL,
		Title:    meta.Title,
		HTML:     html,
	})
	if err != nil {
		return nil, err
	}

	if _, err := store.WriteParsed(s.parsedDir, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
