package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groundplane/webrag/internal/adapters/driven/ai"
	"github.com/groundplane/webrag/internal/pipeline"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the chunk store and build the vector index",
	Long: `Embeds every chunk with the configured embedding model and writes
the inner-product index file plus its metadata sidecar. The sidecar
preserves insertion order, which is the join key at query time.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	embedder, err := ai.CreateEmbeddingService(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	svc := pipeline.NewIndexService(embedder, cfg.EmbedBatchSize, cfg.EmbedRateRPS,
		cfg.ChunksPath, cfg.IndexPath, cfg.MetaPath)

	count, dim, err := svc.Run(context.Background())
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	cmd.Printf("[OK] Indexed %d chunks (dim %d, model %s)\n", count, dim, embedder.ModelName())
	cmd.Printf("[OK] Wrote index    -> %s\n", cfg.IndexPath)
	cmd.Printf("[OK] Wrote metadata -> %s\n", cfg.MetaPath)
	return nil
}
