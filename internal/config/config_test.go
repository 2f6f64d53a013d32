package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Sonarr.Enabled)
	assert.Equal(t, "extrarr", cfg.Sonarr.Tag)
	assert.Equal(t, "extrarr", cfg.Radarr.Tag)
	assert.Equal(t, 20, cfg.Search.Limit)
	assert.Equal(t, "behind the scenes", cfg.Search.ExtrasSuffix)
	assert.Equal(t, float64(50), cfg.Scoring.MinScoreEpisode)
	assert.Equal(t, float64(65), cfg.Scoring.MinScoreExtras)
	assert.Equal(t, "12h", cfg.Daemon.ScanFrequency)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Search.Limit, cfg.Search.Limit)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[sonarr]
enabled = true
url = "http://localhost:8989"
api_key = "abc123"

[search]
limit = 5

[scoring]
min_score_extras = 70.0

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Sonarr.Enabled)
	assert.Equal(t, "http://localhost:8989", cfg.Sonarr.URL)
	assert.Equal(t, "abc123", cfg.Sonarr.APIKey)
	assert.Equal(t, 5, cfg.Search.Limit)
	assert.Equal(t, float64(70), cfg.Scoring.MinScoreExtras)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unset sections keep their defaults.
	assert.Equal(t, "extrarr", cfg.Sonarr.Tag)
	assert.Equal(t, float64(50), cfg.Scoring.MinScoreEpisode)
	assert.Equal(t, 20, cfg.Scoring.MaxExtras)
}

func TestLoadScoringWeightOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[scoring.weights]
name_match = 60.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float64(60), cfg.Scoring.Weights.NameMatch)
	// Sibling weights stay at their defaults.
	assert.Equal(t, float64(30), cfg.Scoring.Weights.EpisodeMatch)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid sonarr only",
			mutate: func(c *Config) {},
		},
		{
			name: "sonarr missing api key",
			mutate: func(c *Config) {
				c.Sonarr.APIKey = ""
			},
			wantErr: "api_key",
		},
		{
			name: "nothing enabled",
			mutate: func(c *Config) {
				c.Sonarr.Enabled = false
			},
			wantErr: "nothing to scan",
		},
		{
			name: "radarr enabled without url",
			mutate: func(c *Config) {
				c.Radarr.Enabled = true
			},
			wantErr: "radarr",
		},
		{
			name: "zero search limit",
			mutate: func(c *Config) {
				c.Search.Limit = 0
			},
			wantErr: "search limit",
		},
		{
			name: "bad similarity ratio bubbles up",
			mutate: func(c *Config) {
				c.Scoring.SimilarityRatio = 1.5
			},
			wantErr: "similarity_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Sonarr.Enabled = true
			cfg.Sonarr.URL = "http://localhost:8989"
			cfg.Sonarr.APIKey = "abc123"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "****", Redact("abc"))
	assert.Equal(t, "abcd********", Redact("abcd12345678"))
}

func TestMapPath(t *testing.T) {
	d := DownloadConfig{PathFrom: "/data/media", PathTo: "/mnt/media"}
	assert.Equal(t, "/mnt/media/tv/Foundation", d.MapPath("/data/media/tv/Foundation"))
	assert.Equal(t, "/other/tv/Foundation", d.MapPath("/other/tv/Foundation"))

	unset := DownloadConfig{}
	assert.Equal(t, "/data/media/tv", unset.MapPath("/data/media/tv"))
}
