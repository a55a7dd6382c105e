// Package cli implements the webrag command tree.
package cli

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/groundplane/webrag/internal/config"
	"github.com/groundplane/webrag/internal/logger"
)

var (
	cfgPath string
	verbose bool

	// cfg is built once in the persistent pre-run and read-only after.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "webrag",
	Short: "Batch pipeline for web-document retrieval and question answering",
	Long: `webrag parses raw web pages into sectioned documents, cleans and
chunks them into a retrievable corpus, builds a vector index, and
answers questions over the retrieved chunks with an LLM.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// .env is optional; absence is not an error.
		_ = godotenv.Load()

		logger.SetVerbose(verbose)

		c, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// msRound is the display granularity for batch durations.
const msRound = time.Millisecond

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
