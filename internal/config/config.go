// Package config loads and persists the extrarr configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/extrarr/internal/logging"
	"github.com/Nomadcxx/extrarr/internal/scoring"
	"github.com/spf13/viper"
)

// Config is the full application configuration, stored as TOML at
// ~/.config/extrarr/config.toml. Environment variables with the EXTRARR_
// prefix override file values (EXTRARR_SONARR_API_KEY, ...).
type Config struct {
	Sonarr   SonarrConfig    `mapstructure:"sonarr"`
	Radarr   RadarrConfig    `mapstructure:"radarr"`
	Jellyfin JellyfinConfig  `mapstructure:"jellyfin"`
	Search   SearchConfig    `mapstructure:"search"`
	Download DownloadConfig  `mapstructure:"download"`
	Scoring  scoring.Options `mapstructure:"scoring"`
	Daemon   DaemonConfig    `mapstructure:"daemon"`
	Options  OptionsConfig   `mapstructure:"options"`
	Logging  logging.Config  `mapstructure:"logging"`
}

// SonarrConfig contains Sonarr integration settings.
type SonarrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
	// Only series carrying this tag label are processed.
	Tag string `mapstructure:"tag"`
}

// RadarrConfig contains Radarr integration settings.
type RadarrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
	Tag     string `mapstructure:"tag"`
}

// JellyfinConfig contains the optional Jellyfin refresh hook.
type JellyfinConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// SearchConfig tunes the YouTube search provider.
type SearchConfig struct {
	// Candidates requested per query (the provider's page size).
	Limit int `mapstructure:"limit"`
	// Appended to extras queries, e.g. "behind the scenes".
	ExtrasSuffix string `mapstructure:"extras_suffix"`
}

// DownloadConfig controls yt-dlp downloads and library placement.
type DownloadConfig struct {
	// yt-dlp format selector.
	Format string `mapstructure:"format"`
	// Subfolder for movie extras inside the movie directory.
	ExtrasDir string `mapstructure:"extras_dir"`
	// Remaps the *arr root path to a locally mounted path; empty = no remap.
	PathFrom string `mapstructure:"path_from"`
	PathTo   string `mapstructure:"path_to"`
}

// DaemonConfig controls the background scan loop and status API.
type DaemonConfig struct {
	ScanFrequency string `mapstructure:"scan_frequency"`
	ListenAddr    string `mapstructure:"listen_addr"`
}

// OptionsConfig contains general options.
type OptionsConfig struct {
	DryRun bool `mapstructure:"dry_run"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sonarr: SonarrConfig{
			Enabled: false,
			Tag:     "extrarr",
		},
		Radarr: RadarrConfig{
			Enabled: false,
			Tag:     "extrarr",
		},
		Jellyfin: JellyfinConfig{
			Enabled: false,
		},
		Search: SearchConfig{
			Limit:        20,
			ExtrasSuffix: "behind the scenes",
		},
		Download: DownloadConfig{
			Format:    "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
			ExtrasDir: "behind the scenes",
		},
		Scoring: scoring.DefaultOptions(),
		Daemon: DaemonConfig{
			ScanFrequency: "12h",
			ListenAddr:    ":8789",
		},
		Options: OptionsConfig{
			DryRun: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// ConfigPath returns the config file location.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to get config dir: %w", err)
	}
	return filepath.Join(configDir, "extrarr", "config.toml"), nil
}

// ConfigExists reports whether a config file is present.
func ConfigExists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file at path (default location when empty),
// applies environment overrides, and fills in defaults for anything
// unset.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, err
		}
	}
	v.SetConfigFile(path)
	v.SetEnvPrefix("extrarr")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate fails fast on configuration that would make a run
// meaningless, before any network call or scoring happens.
func (c *Config) Validate() error {
	if c.Sonarr.Enabled {
		if c.Sonarr.URL == "" || c.Sonarr.APIKey == "" {
			return fmt.Errorf("sonarr enabled but url or api_key is missing")
		}
	}
	if c.Radarr.Enabled {
		if c.Radarr.URL == "" || c.Radarr.APIKey == "" {
			return fmt.Errorf("radarr enabled but url or api_key is missing")
		}
	}
	if c.Jellyfin.Enabled {
		if c.Jellyfin.URL == "" || c.Jellyfin.APIKey == "" {
			return fmt.Errorf("jellyfin enabled but url or api_key is missing")
		}
	}
	if !c.Sonarr.Enabled && !c.Radarr.Enabled {
		return fmt.Errorf("neither sonarr nor radarr is enabled, nothing to scan")
	}
	if c.Search.Limit < 1 {
		return fmt.Errorf("search limit must be at least 1, got %d", c.Search.Limit)
	}
	return c.Scoring.Validate()
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}
	return os.WriteFile(configFile, []byte(c.ToTOML()), 0644)
}

// ToTOML renders the commented config file. Scoring weights and keyword
// lists keep their built-in defaults unless overridden under
// [scoring.weights] and [scoring.lists].
func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# Extrarr Configuration
# Generated by: extrarr config init

# ============================================================================
# SONARR (TV extras and season-0 specials)
# Get the API key from: Sonarr -> Settings -> General -> API Key
# ============================================================================
[sonarr]
enabled = %v
url = "%s"
api_key = "%s"
# Only series tagged with this label are scanned
tag = "%s"

# ============================================================================
# RADARR (movie extras)
# ============================================================================
[radarr]
enabled = %v
url = "%s"
api_key = "%s"
tag = "%s"

# ============================================================================
# JELLYFIN (optional library refresh after downloads)
# ============================================================================
[jellyfin]
enabled = %v
url = "%s"
api_key = "%s"

# ============================================================================
# YOUTUBE SEARCH
# ============================================================================
[search]
# Results requested per query
limit = %d
# Appended to extras queries: "<title> - behind the scenes"
extras_suffix = "%s"

# ============================================================================
# DOWNLOADS
# ============================================================================
[download]
format = "%s"
# Movie extras land in <movie dir>/<extras_dir>/
extras_dir = "%s"

# ============================================================================
# SCORING
# Weight table and keyword lists use built-in defaults; override them
# under [scoring.weights] / [scoring.lists] if needed.
# ============================================================================
[scoring]
min_score_episode = %v
min_score_extras = %v
max_extras = %d
similarity_ratio = %v
duration_tolerance_sec = %d
duration_tolerance_pct = %v

# ============================================================================
# DAEMON
# ============================================================================
[daemon]
scan_frequency = "%s"
listen_addr = "%s"

# ============================================================================
# GENERAL
# ============================================================================
[options]
dry_run = %v

[logging]
level = "%s"
`,
		c.Sonarr.Enabled, c.Sonarr.URL, c.Sonarr.APIKey, c.Sonarr.Tag,
		c.Radarr.Enabled, c.Radarr.URL, c.Radarr.APIKey, c.Radarr.Tag,
		c.Jellyfin.Enabled, c.Jellyfin.URL, c.Jellyfin.APIKey,
		c.Search.Limit, c.Search.ExtrasSuffix,
		c.Download.Format, c.Download.ExtrasDir,
		c.Scoring.MinScoreEpisode, c.Scoring.MinScoreExtras, c.Scoring.MaxExtras,
		c.Scoring.SimilarityRatio, c.Scoring.DurationToleranceSec, c.Scoring.DurationTolerancePct,
		c.Daemon.ScanFrequency, c.Daemon.ListenAddr,
		c.Options.DryRun,
		c.Logging.Level,
	)
}

// Redact masks an API key for display.
func Redact(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}

// MapPath rewrites a *arr library path onto the locally mounted
// equivalent when path_from/path_to remapping is configured.
func (d DownloadConfig) MapPath(p string) string {
	if d.PathFrom == "" || d.PathTo == "" {
		return p
	}
	if !strings.HasPrefix(p, d.PathFrom) {
		return p
	}
	return filepath.Join(d.PathTo, strings.TrimPrefix(p, d.PathFrom))
}
