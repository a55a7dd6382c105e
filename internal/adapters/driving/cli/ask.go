package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groundplane/webrag/internal/adapters/driven/ai"
	"github.com/groundplane/webrag/internal/answer"
	"github.com/groundplane/webrag/internal/pipeline"
)

var askShowContext bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question over the indexed corpus",
	Long: `Retrieves the top chunks for the question and asks the configured
LLM for a short answer grounded in them. When the retrieved context
does not support an answer, the reply is exactly: I don't know.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved chunks before the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx := context.Background()

	embedder, err := ai.CreateEmbeddingService(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	llm, err := ai.CreateLLMService(cfg)
	if err != nil {
		return err
	}
	defer llm.Close()

	query := pipeline.NewQueryService(embedder, cfg.IndexPath, cfg.MetaPath, cfg.TopK, cfg.MinScore)
	chunks, err := query.Search(ctx, question)
	if err != nil {
		return fmt.Errorf("retrieve failed: %w", err)
	}

	if askShowContext {
		outputSearchText(cmd, question, chunks)
	}

	gen := answer.New(llm)
	reply, err := gen.Answer(ctx, question, chunks)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	cmd.Println(reply)
	return nil
}
