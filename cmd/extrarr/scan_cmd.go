package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var tvOnly, moviesOnly bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan tagged media and download matching extras",
		Long: `Run one scan: fetch tagged series and movies from Sonarr/Radarr,
search YouTube for missing specials and extras, and download everything
that clears the score threshold.

Examples:
  extrarr scan
  extrarr scan --tv          # series only, skip Radarr
  extrarr scan --dry-run     # show what would be downloaded, with scores
  extrarr scan -v            # verbose logging`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tvOnly && moviesOnly {
				return fmt.Errorf("--tv and --movies are mutually exclusive")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if tvOnly {
				cfg.Radarr.Enabled = false
			}
			if moviesOnly {
				cfg.Sonarr.Enabled = false
			}

			log := newLogger(cfg)
			defer log.Close()

			f, store, err := buildFinder(cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Options.DryRun {
				fmt.Println("Dry run: scoring only, no downloads")
			}

			report, err := f.Run(ctx)
			if report != nil {
				fmt.Printf("Scan finished: %s\n", report)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&tvOnly, "tv", false, "scan series only")
	cmd.Flags().BoolVar(&moviesOnly, "movies", false, "scan movies only")

	return cmd
}
