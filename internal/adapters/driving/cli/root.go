// Package cli implements the command-line interface.
//
// It is a driving adapter: commands construct the application's
// services from configuration and drive them. The serve command is the
// main entry point and runs the HTTP API.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wikivec/wikivec/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "wikivec",
	Short: "Semantic search over Wikipedia topics",
	Long: `wikivec fetches Wikipedia pages for configured topics, splits them
into chunks, embeds the chunks with OpenAI, stores the vectors in
Pinecone, and serves semantic search over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
