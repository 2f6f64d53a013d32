package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile string
	verbose bool
	dryRun  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "extrarr",
		Short: "YouTube extras finder for Sonarr and Radarr libraries",
		Long: `Extrarr finds behind-the-scenes videos, featurettes, and missing
specials on YouTube for media tagged in Sonarr and Radarr.

Candidates are scored on title relevance, channel trust, keywords,
duration, popularity, recency, and resolution; only videos above the
quality threshold are downloaded, with near-duplicates collapsed to
the best upload.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/extrarr/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "preview scoring without downloading")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDaemonCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("extrarr %s\n", version)
		},
	}
}
