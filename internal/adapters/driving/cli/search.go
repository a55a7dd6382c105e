package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groundplane/webrag/internal/adapters/driven/ai"
	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/pipeline"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [question]",
	Short: "Retrieve the chunks most similar to a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	question := args[0]

	embedder, err := ai.CreateEmbeddingService(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	topK := cfg.TopK
	if searchLimit > 0 {
		topK = searchLimit
	}
	svc := pipeline.NewQueryService(embedder, cfg.IndexPath, cfg.MetaPath, topK, cfg.MinScore)

	results, err := svc.Search(context.Background(), question)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchText(cmd, question, results)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, question string, results []domain.RetrievedChunk) {
	cmd.Printf("\nQUERY: %s\n", question)
	if len(results) == 0 {
		cmd.Println("\nNo results found.")
		return
	}

	cmd.Println("\nTOP RESULTS:")
	cmd.Println()
	for rank, r := range results {
		cmd.Printf("#%d score=%.3f  %s\n", rank+1, r.Score, r.DocID)
		cmd.Printf("   source_id=%s | jurisdiction=%s | authority=%s | section=%s\n",
			r.SourceID, r.Jurisdiction, r.Authority, r.Section)
		cmd.Printf("   url=%s\n", r.URL)
		cmd.Printf("   preview: %s...\n\n", preview(r.Text, 300))
	}
}

func preview(text string, n int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if r := []rune(text); len(r) > n {
		return string(r[:n])
	}
	return text
}
