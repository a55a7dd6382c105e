package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groundplane/webrag/internal/chunker"
	"github.com/groundplane/webrag/internal/pipeline"
	"github.com/groundplane/webrag/internal/sources"
	"github.com/groundplane/webrag/internal/textclean"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Clean parsed sections and pack them into the chunk store",
	Long: `Reads every parsed document in sorted order, drops junk sections,
cleans the survivors, packs them into overlapping word-bounded chunks,
and rebuilds the line-delimited chunk store.`,
	RunE: runChunk,
}

func init() {
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, _ []string) error {
	table, err := sources.Load(cfg.SourcesCSV)
	if err != nil {
		return err
	}

	cleaner, err := buildCleaner()
	if err != nil {
		return err
	}
	svc := pipeline.NewChunkService(cleaner, newPacker(), table, cfg.ParsedDir, cfg.ChunksPath)
	report, err := svc.Run()
	if err != nil {
		return fmt.Errorf("chunk failed: %w", err)
	}

	cmd.Printf("[OK] Wrote %d chunks to %s\n", report.ChunksWritten, cfg.ChunksPath)
	cmd.Printf("[OK] Cleaned sections kept: %d\n", report.SectionsKept)
	cmd.Printf("[OK] Sections skipped as junk/too-short: %d\n", report.SectionsSkipped)
	recordRun(report)
	return nil
}

func newPacker() *chunker.Packer {
	return chunker.New(
		chunker.WithTargetWords(cfg.TargetWords),
		chunker.WithMaxWords(cfg.MaxWords),
		chunker.WithOverlapWords(cfg.OverlapWords),
	)
}

// buildCleaner applies configured pattern overrides on top of the
// default rule set.
func buildCleaner() (*textclean.Cleaner, error) {
	opts := []textclean.Option{textclean.WithMinSectionChars(cfg.MinSectionChars)}

	if len(cfg.JunkHeadingPatterns) > 0 {
		rules, err := textclean.CompileRules(cfg.JunkHeadingPatterns)
		if err != nil {
			return nil, fmt.Errorf("junk_heading_patterns: %w", err)
		}
		opts = append(opts, textclean.WithHeadingRules(rules))
	}
	if len(cfg.JunkTextPatterns) > 0 {
		rules, err := textclean.CompileRules(cfg.JunkTextPatterns)
		if err != nil {
			return nil, fmt.Errorf("junk_text_patterns: %w", err)
		}
		opts = append(opts, textclean.WithTextRules(rules))
	}
	return textclean.New(opts...), nil
}
