package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/groundplane/webrag/internal/core/ports/driven"
	"github.com/groundplane/webrag/internal/index"
	"github.com/groundplane/webrag/internal/logger"
	"github.com/groundplane/webrag/internal/store"
)

// IndexService embeds the chunk store and writes the vector index plus
// its metadata sidecar. The sidecar holds the same records in the same
// order as the embeddings were inserted; that order is the join key and
// must never be re-sorted without rebuilding the index.
type IndexService struct {
	embedder   driven.EmbeddingService
	limiter    *rate.Limiter
	batchSize  int
	chunksPath string
	indexPath  string
	metaPath   string
}

// NewIndexService creates the index stage. rps throttles embedding API
// batches; zero disables throttling.
func NewIndexService(embedder driven.EmbeddingService, batchSize, rps int, chunksPath, indexPath, metaPath string) *IndexService {
	if batchSize <= 0 {
		batchSize = 64
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &IndexService{
		embedder:   embedder,
		limiter:    rate.NewLimiter(limit, 1),
		batchSize:  batchSize,
		chunksPath: chunksPath,
		indexPath:  indexPath,
		metaPath:   metaPath,
	}
}

// Run builds the index from the chunk store. Embedding failures are
// external-service errors and propagate fatally; no retry is attempted.
func (s *IndexService) Run(ctx context.Context) (count, dim int, err error) {
	recs, err := store.ReadChunks(s.chunksPath)
	if err != nil {
		return 0, 0, err
	}
	if len(recs) == 0 {
		return 0, 0, fmt.Errorf("chunk store %s is empty", s.chunksPath)
	}

	idx, err := index.New(s.embedder.Dimensions())
	if err != nil {
		return 0, 0, err
	}

	for start := 0; start < len(recs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(recs) {
			end = len(recs)
		}
		texts := make([]string, 0, end-start)
		for _, r := range recs[start:end] {
			texts = append(texts, r.Text)
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return 0, 0, fmt.Errorf("rate limit wait: %w", err)
		}
		vecs, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return 0, 0, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}

		// Unit vectors make inner product equal cosine similarity.
		for _, v := range vecs {
			index.Normalize(v)
		}
		if err := idx.Add(vecs); err != nil {
			return 0, 0, err
		}
		logger.Debug("embedded %d/%d chunks", end, len(recs))
	}

	if err := idx.WriteFile(s.indexPath); err != nil {
		return 0, 0, err
	}
	if err := store.WriteMeta(s.metaPath, recs); err != nil {
		return 0, 0, err
	}
	return idx.Len(), idx.Dim(), nil
}
