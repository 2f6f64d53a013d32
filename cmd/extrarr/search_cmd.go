package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/Nomadcxx/extrarr/internal/scoring"
	"github.com/Nomadcxx/extrarr/internal/ytsearch"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		modeName     string
		episodeTitle string
		network      string
	)

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Search YouTube and show scored candidates",
		Long: `Run one YouTube search and print every candidate with its score.
Nothing is downloaded; this is for tuning thresholds and inspecting
why a video was accepted or rejected.

Examples:
  extrarr search "Breaking Bad"
  extrarr search "Foundation" --episode "Making the Empire" --mode episode
  extrarr search "Dune" --network "Legendary" -v   # per-signal breakdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var mode scoring.Mode
			switch modeName {
			case "episode":
				mode = scoring.ModeEpisode
			case "extras":
				mode = scoring.ModeExtras
			default:
				return fmt.Errorf("unknown mode %q (episode or extras)", modeName)
			}

			engine, err := scoring.NewEngine(cfg.Scoring)
			if err != nil {
				return err
			}

			name := args[0]
			query := name
			if mode == scoring.ModeEpisode && episodeTitle != "" {
				query = fmt.Sprintf("%s %s", name, episodeTitle)
			} else if mode == scoring.ModeExtras {
				query = fmt.Sprintf("%s %s", name, cfg.Search.ExtrasSuffix)
			}

			searcher := ytsearch.NewSearcher(cfg.Search.Limit)
			candidates, err := searcher.Search(context.Background(), query)
			if err != nil {
				return err
			}

			target := scoring.Target{
				Name:         name,
				Secondary:    network,
				EpisodeTitle: episodeTitle,
			}
			result := engine.Evaluate(target, candidates, mode)

			selected := make(map[string]bool, len(result.Selected))
			for _, s := range result.Selected {
				selected[s.Candidate.ID] = true
			}

			scored := append([]scoring.Scored(nil), result.Scored...)
			sort.SliceStable(scored, func(i, j int) bool {
				return scored[i].Total > scored[j].Total
			})

			threshold := cfg.Scoring.Threshold(mode)
			fmt.Printf("Query: %q (%s mode, threshold %.0f, %d candidates)\n\n",
				query, mode, threshold, len(scored))

			for _, s := range scored {
				icon := "○"
				if selected[s.Candidate.ID] {
					icon = "✓"
				} else if s.Total >= threshold {
					// admitted but lost duplicate clustering or the cap
					icon = "⊘"
				}
				fmt.Printf("%s %7.2f  %s\n", icon, s.Total, s.Candidate.Title)
				fmt.Printf("         %s  %s  %s\n",
					s.Candidate.ID, s.Candidate.Channel, formatDuration(s.Candidate.Duration))
				if verbose {
					for _, e := range s.Breakdown {
						fmt.Printf("           %+7.2f  %s\n", e.Points, e.Label)
					}
				}
			}

			fmt.Printf("\nSelected: %d\n", len(result.Selected))
			return nil
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "extras", "scoring mode: episode or extras")
	cmd.Flags().StringVar(&episodeTitle, "episode", "", "episode title (episode mode)")
	cmd.Flags().StringVar(&network, "network", "", "network or studio name for channel matching")

	return cmd
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "?:??"
	}
	m := seconds / 60
	s := seconds % 60
	if m >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", m/60, m%60, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
