package cli

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: parse, chunk, index",
	Long: `Runs the three build stages back to back against the configured
stores. Each stage rebuilds its output from scratch, so a run always
leaves the index consistent with the sources table.`,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runAll(cmd *cobra.Command, _ []string) error {
	if err := runParse(cmd, nil); err != nil {
		return err
	}
	if err := runChunk(cmd, nil); err != nil {
		return err
	}
	return runIndex(cmd, nil)
}
