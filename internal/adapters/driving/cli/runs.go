package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/groundplane/webrag/internal/history"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent pipeline runs",
	Long:  `Prints the run history recorded by the parse and chunk stages, newest first.`,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	st, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(context.Background(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tSTAGE\tRUN\tDURATION\tDOCS OK/FAIL\tCHUNKS\tSECTIONS KEPT/SKIPPED")
	for _, r := range runs {
		shortID := r.RunID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%d\t%d/%d\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Stage, shortID, r.Duration.Round(time.Millisecond),
			r.DocumentsOK, r.DocumentsFailed,
			r.ChunksWritten, r.SectionsKept, r.SectionsSkipped)
	}
	return w.Flush()
}
