package pipeline

import (
	"context"
	"fmt"

	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/core/ports/driven"
	"github.com/groundplane/webrag/internal/index"
	"github.com/groundplane/webrag/internal/store"
)

// QueryService answers top-k retrieval requests against a built index.
type QueryService struct {
	embedder  driven.EmbeddingService
	indexPath string
	metaPath  string
	topK      int
	minScore  float32
}

// NewQueryService creates the query stage.
func NewQueryService(embedder driven.EmbeddingService, indexPath, metaPath string, topK int, minScore float64) *QueryService {
	if topK <= 0 {
		topK = 8
	}
	return &QueryService{
		embedder:  embedder,
		indexPath: indexPath,
		metaPath:  metaPath,
		topK:      topK,
		minScore:  float32(minScore),
	}
}

// Search embeds the question, queries the index, and joins hits to
// their metadata records by insertion-order id. A zero-hit result is
// an empty slice, not an error: the answer generator still runs and
// returns its fallback.
func (s *QueryService) Search(ctx context.Context, question string) ([]domain.RetrievedChunk, error) {
	idx, err := index.Load(s.indexPath)
	if err != nil {
		return nil, err
	}
	meta, err := store.ReadChunks(s.metaPath)
	if err != nil {
		return nil, err
	}
	if idx.Len() != len(meta) {
		return nil, fmt.Errorf("%w: index holds %d vectors but metadata has %d records",
			domain.ErrIndexUnavailable, idx.Len(), len(meta))
	}

	q, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	index.Normalize(q)

	hits, err := idx.Search(q, s.topK)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RetrievedChunk, 0, len(hits))
	for _, h := range hits {
		if h.Score < s.minScore {
			continue
		}
		rec := meta[h.ID]
		out = append(out, domain.RetrievedChunk{
			Text:         rec.Text,
			URL:          rec.URL,
			DocID:        rec.ChunkID,
			SourceID:     rec.SourceID,
			Section:      rec.Section,
			Jurisdiction: rec.Jurisdiction,
			Authority:    rec.AuthorityLevel,
			Score:        h.Score,
			HasScore:     true,
		})
	}
	return out, nil
}
