package pipeline

import (
	"fmt"

	"github.com/groundplane/webrag/internal/chunker"
	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/logger"
	"github.com/groundplane/webrag/internal/records"
	"github.com/groundplane/webrag/internal/sources"
	"github.com/groundplane/webrag/internal/store"
	"github.com/groundplane/webrag/internal/textclean"
)

// ChunkService cleans parsed sections and packs them into the chunk
// store. The store is rebuilt wholesale on every run.
type ChunkService struct {
	cleaner    *textclean.Cleaner
	packer     *chunker.Packer
	table      *sources.Table
	parsedDir  string
	chunksPath string
}

// NewChunkService creates the chunk stage.
func NewChunkService(cleaner *textclean.Cleaner, packer *chunker.Packer, table *sources.Table, parsedDir, chunksPath string) *ChunkService {
	return &ChunkService{
		cleaner:    cleaner,
		packer:     packer,
		table:      table,
		parsedDir:  parsedDir,
		chunksPath: chunksPath,
	}
}

// Run processes every parsed document in sorted file order. A parsed
// document whose source id is missing from the sources table aborts
// the run: that is a corpus integrity problem, not a bad page.
func (s *ChunkService) Run() (*domain.BatchReport, error) {
	report := domain.NewBatchReport("chunk")
	defer report.Finish()

	paths, err := store.ListParsed(s.parsedDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no parsed documents found in %s", s.parsedDir)
	}

	writer, err := store.NewChunkWriter(s.chunksPath)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		doc, err := store.ReadParsed(path)
		if err != nil {
			writer.Close()
			return nil, err
		}
		if err := s.chunkDocument(doc, writer, report); err != nil {
			writer.Close()
			return nil, err
		}
		report.Add(domain.DocumentResult{
			SourceID: doc.SourceID,
			Status:   domain.DocumentOK,
			Sections: len(doc.Sections),
		})
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close chunk store: %w", err)
	}
	report.ChunksWritten = writer.Count()
	return report, nil
}

func (s *ChunkService) chunkDocument(doc *domain.ParsedDocument, writer *store.ChunkWriter, report *domain.BatchReport) error {
	meta, ok := s.table.Get(doc.SourceID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSource, doc.SourceID)
	}

	title := doc.Title
	if title == "" {
		title = meta.Title
	}
	url := doc.URL
	if url == "" {
		url = meta.URL
	}

	for _, sec := range doc.Sections {
		text, ok := s.cleaner.Clean(sec.Heading, sec.Text)
		if !ok {
			report.SectionsSkipped++
			logger.Debug("skip section %q of %s", sec.Heading, doc.SourceID)
			continue
		}
		report.SectionsKept++

		paras := chunker.SplitParagraphs(text)
		chunks := s.packer.Pack(paras)

		for _, rec := range records.Assemble(meta, title, url, sec.Heading, chunks) {
			if err := writer.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
