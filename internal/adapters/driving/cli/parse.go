package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/history"
	"github.com/groundplane/webrag/internal/logger"
	"github.com/groundplane/webrag/internal/pipeline"
	"github.com/groundplane/webrag/internal/sources"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse raw HTML pages into sectioned documents",
	Long: `Reads every webpage row of the sources table, extracts ordered
(heading, text) sections from its raw HTML file, and writes one parsed
JSON document per source. Documents that fail are logged and skipped.`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	table, err := sources.Load(cfg.SourcesCSV)
	if err != nil {
		return err
	}

	svc := pipeline.NewParseService(table, cfg.RawDir, cfg.ParsedDir)
	report, err := svc.Run()
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	printParseSummary(cmd, report)
	recordRun(report)
	return nil
}

func printParseSummary(cmd *cobra.Command, report *domain.BatchReport) {
	ok, failed := report.Counts()
	cmd.Printf("[OK] Parsed %d documents (%d failed) in %s\n", ok, failed, report.Duration.Round(msRound))
	for _, d := range report.Documents {
		if d.Failed() {
			cmd.Printf("[FAIL] %s: %s\n", d.SourceID, d.Reason)
		}
	}
}

// recordRun persists the batch summary; history failures must never
// fail the pipeline itself.
func recordRun(report *domain.BatchReport) {
	st, err := history.Open(cfg.HistoryDB)
	if err != nil {
		logger.Warn("run history unavailable: %v", err)
		return
	}
	defer st.Close()
	if err := st.Record(context.Background(), report); err != nil {
		logger.Warn("record run: %v", err)
	}
}
