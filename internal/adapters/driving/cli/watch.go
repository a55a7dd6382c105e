package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/groundplane/webrag/internal/logger"
	"github.com/groundplane/webrag/internal/pipeline"
	"github.com/groundplane/webrag/internal/sources"
	"github.com/groundplane/webrag/internal/watch"
)

var watchNoChunk bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-parse and re-chunk sources when their raw HTML changes",
	Long: `Watches the raw HTML directory and re-runs the parse stage for a
source whenever its file is written, then rebuilds the chunk store so
it stays consistent with the parsed documents. Runs until interrupted.
The vector index is not rebuilt automatically; run "index" once editing
is done.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoChunk, "no-chunk", false, "only re-parse; skip the chunk store rebuild")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	table, err := sources.Load(cfg.SourcesCSV)
	if err != nil {
		return err
	}
	parseSvc := pipeline.NewParseService(table, cfg.RawDir, cfg.ParsedDir)

	cleaner, err := buildCleaner()
	if err != nil {
		return err
	}
	chunkSvc := pipeline.NewChunkService(cleaner, newPacker(), table, cfg.ParsedDir, cfg.ChunksPath)

	handler := func(sourceID string) {
		doc, err := parseSvc.ParseOne(sourceID)
		if err != nil {
			logger.Warn("re-parse %s: %v", sourceID, err)
			return
		}
		cmd.Printf("[OK] Re-parsed %s (%d sections)\n", sourceID, len(doc.Sections))

		if watchNoChunk {
			return
		}
		report, err := chunkSvc.Run()
		if err != nil {
			logger.Warn("rebuild chunks: %v", err)
			return
		}
		cmd.Printf("[OK] Rebuilt chunk store (%d chunks)\n", report.ChunksWritten)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(cfg.RawDir, handler)
	if err := w.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
