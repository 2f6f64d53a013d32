package main

import (
	"fmt"
	"time"

	"github.com/Nomadcxx/extrarr/internal/config"
	"github.com/Nomadcxx/extrarr/internal/jellyfin"
	"github.com/Nomadcxx/extrarr/internal/radarr"
	"github.com/Nomadcxx/extrarr/internal/sonarr"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage extrarr configuration",
		Long: `Commands for managing extrarr configuration.

The config file is stored at: ~/.config/extrarr/config.toml

Examples:
  extrarr config init              # Create default config file
  extrarr config show              # Display current configuration
  extrarr config test              # Test all connections
  extrarr config path              # Show config file path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigTestCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ConfigExists() && !force {
				path, _ := config.ConfigPath()
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			path, _ := config.ConfigPath()
			fmt.Printf("✓ Created config file: %s\n", path)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. Edit the config file to set your URLs and API keys")
			fmt.Println("  2. Tag series/movies with 'extrarr' in Sonarr/Radarr")
			fmt.Println("  3. Run 'extrarr config test' to verify connections")
			fmt.Println("  4. Run 'extrarr scan --dry-run' to preview")

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Println("Sonarr:")
			fmt.Printf("  Enabled: %v\n", cfg.Sonarr.Enabled)
			if cfg.Sonarr.Enabled {
				fmt.Printf("  URL: %s\n", cfg.Sonarr.URL)
				fmt.Printf("  API key: %s\n", config.Redact(cfg.Sonarr.APIKey))
				fmt.Printf("  Tag: %s\n", cfg.Sonarr.Tag)
			}

			fmt.Println("Radarr:")
			fmt.Printf("  Enabled: %v\n", cfg.Radarr.Enabled)
			if cfg.Radarr.Enabled {
				fmt.Printf("  URL: %s\n", cfg.Radarr.URL)
				fmt.Printf("  API key: %s\n", config.Redact(cfg.Radarr.APIKey))
				fmt.Printf("  Tag: %s\n", cfg.Radarr.Tag)
			}

			fmt.Println("Jellyfin:")
			fmt.Printf("  Enabled: %v\n", cfg.Jellyfin.Enabled)
			if cfg.Jellyfin.Enabled {
				fmt.Printf("  URL: %s\n", cfg.Jellyfin.URL)
				fmt.Printf("  API key: %s\n", config.Redact(cfg.Jellyfin.APIKey))
			}

			fmt.Println("Scoring:")
			fmt.Printf("  Episode threshold: %.0f\n", cfg.Scoring.MinScoreEpisode)
			fmt.Printf("  Extras threshold: %.0f\n", cfg.Scoring.MinScoreExtras)
			fmt.Printf("  Max extras per title: %d\n", cfg.Scoring.MaxExtras)
			fmt.Printf("  Similarity ratio: %.2f\n", cfg.Scoring.SimilarityRatio)

			fmt.Println("Daemon:")
			fmt.Printf("  Scan frequency: %s\n", cfg.Daemon.ScanFrequency)
			fmt.Printf("  Listen address: %s\n", cfg.Daemon.ListenAddr)

			return nil
		},
	}
}

func newConfigTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test connections to all enabled services",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			failures := 0

			if cfg.Sonarr.Enabled {
				client := sonarr.NewClient(sonarr.Config{
					URL: cfg.Sonarr.URL, APIKey: cfg.Sonarr.APIKey, Timeout: 10 * time.Second,
				})
				if status, err := client.GetSystemStatus(); err != nil {
					fmt.Printf("✗ Sonarr: %v\n", err)
					failures++
				} else {
					fmt.Printf("✓ Sonarr %s at %s\n", status.Version, cfg.Sonarr.URL)
				}
			} else {
				fmt.Println("○ Sonarr disabled")
			}

			if cfg.Radarr.Enabled {
				client := radarr.NewClient(radarr.Config{
					URL: cfg.Radarr.URL, APIKey: cfg.Radarr.APIKey, Timeout: 10 * time.Second,
				})
				if status, err := client.GetSystemStatus(); err != nil {
					fmt.Printf("✗ Radarr: %v\n", err)
					failures++
				} else {
					fmt.Printf("✓ Radarr %s at %s\n", status.Version, cfg.Radarr.URL)
				}
			} else {
				fmt.Println("○ Radarr disabled")
			}

			if cfg.Jellyfin.Enabled {
				client := jellyfin.NewClient(jellyfin.Config{
					URL: cfg.Jellyfin.URL, APIKey: cfg.Jellyfin.APIKey, Timeout: 10 * time.Second,
				})
				if err := client.Ping(); err != nil {
					fmt.Printf("✗ Jellyfin: %v\n", err)
					failures++
				} else {
					fmt.Printf("✓ Jellyfin at %s\n", cfg.Jellyfin.URL)
				}
			} else {
				fmt.Println("○ Jellyfin disabled")
			}

			if failures > 0 {
				return fmt.Errorf("%d connection(s) failed", failures)
			}
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			if !config.ConfigExists() {
				fmt.Println("(not created yet - run 'extrarr config init')")
			}
			return nil
		},
	}
}
