package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"
)

// Downloader fetches videos with yt-dlp into library directories.
type Downloader struct {
	// yt-dlp format selector.
	Format string
}

func NewDownloader(format string) *Downloader {
	if format == "" {
		format = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	}
	return &Downloader{Format: format}
}

// videoExtensions lists container formats yt-dlp may produce,
// best-first guess order.
var videoExtensions = []string{".mp4", ".mkv", ".webm", ".mov", ".avi"}

// Download fetches url into dir as <base>.<ext> and returns the path
// of the produced file. The extension depends on which format yt-dlp
// selected, so the file is located by probing known containers.
func (d *Downloader) Download(ctx context.Context, url, dir, base string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating download dir: %w", err)
	}

	template := filepath.Join(dir, base+".%(ext)s")
	cmd := ytdlp.New().
		Format(d.Format).
		NoWarnings().
		NoPlaylist().
		Output(template)

	if _, err := cmd.Run(ctx, url); err != nil {
		return "", fmt.Errorf("yt-dlp download %q: %w", url, err)
	}

	for _, ext := range videoExtensions {
		candidate := filepath.Join(dir, base+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("downloaded file not found for %q in %s", base, dir)
}
