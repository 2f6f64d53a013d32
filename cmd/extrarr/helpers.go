package main

import (
	"fmt"
	"time"

	"github.com/Nomadcxx/extrarr/internal/config"
	"github.com/Nomadcxx/extrarr/internal/download"
	"github.com/Nomadcxx/extrarr/internal/finder"
	"github.com/Nomadcxx/extrarr/internal/history"
	"github.com/Nomadcxx/extrarr/internal/jellyfin"
	"github.com/Nomadcxx/extrarr/internal/logging"
	"github.com/Nomadcxx/extrarr/internal/radarr"
	"github.com/Nomadcxx/extrarr/internal/sonarr"
	"github.com/Nomadcxx/extrarr/internal/ytsearch"
)

// loadConfig reads the config file and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dryRun {
		cfg.Options.DryRun = true
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the file logger from config.
func newLogger(cfg *config.Config) *logging.Logger {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		// A broken log path shouldn't stop a scan.
		return logging.Nop()
	}
	return log
}

// buildFinder wires up clients for every enabled integration and
// returns the finder plus the history store (caller closes it).
func buildFinder(cfg *config.Config, log *logging.Logger) (*finder.Finder, *history.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	store, err := history.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}

	deps := finder.Deps{
		Search:   ytsearch.NewSearcher(cfg.Search.Limit),
		Download: download.NewDownloader(cfg.Download.Format),
		History:  store,
	}

	if cfg.Sonarr.Enabled {
		deps.Series = sonarr.NewClient(sonarr.Config{
			URL:     cfg.Sonarr.URL,
			APIKey:  cfg.Sonarr.APIKey,
			Timeout: 30 * time.Second,
		})
	}
	if cfg.Radarr.Enabled {
		deps.Movies = radarr.NewClient(radarr.Config{
			URL:     cfg.Radarr.URL,
			APIKey:  cfg.Radarr.APIKey,
			Timeout: 30 * time.Second,
		})
	}
	if cfg.Jellyfin.Enabled {
		deps.Jellyfin = jellyfin.NewClient(jellyfin.Config{
			URL:    cfg.Jellyfin.URL,
			APIKey: cfg.Jellyfin.APIKey,
		})
	}

	f, err := finder.New(cfg, log, deps)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return f, store, nil
}
