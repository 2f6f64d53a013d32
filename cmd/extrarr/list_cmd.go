package main

import (
	"fmt"

	"github.com/Nomadcxx/extrarr/internal/history"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List downloaded extras",
		Long: `Show the download history, newest first.

Examples:
  extrarr list
  extrarr list --limit 10
  extrarr list -v     # include paths and URLs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open()
			if err != nil {
				return err
			}
			defer store.Close()

			downloads, err := store.Recent(limit)
			if err != nil {
				return err
			}

			if len(downloads) == 0 {
				fmt.Println("No downloads recorded yet. Run 'extrarr scan' first.")
				return nil
			}

			total, _ := store.Total()
			fmt.Printf("Downloads: %d total\n\n", total)

			for _, d := range downloads {
				fmt.Printf("✓ [%s] %s (%.1f)\n", d.DownloadedAt.Format("2006-01-02"), d.Title, d.Score)
				fmt.Printf("    %s: %s\n", d.MediaType, d.MediaTitle)
				if verbose {
					fmt.Printf("    Path: %s\n", d.Path)
					fmt.Printf("    URL:  %s\n", d.URL)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum entries to show")

	return cmd
}
