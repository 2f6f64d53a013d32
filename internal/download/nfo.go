package download

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// NFOKind selects the root element of the sidecar file.
type NFOKind string

const (
	NFOEpisode NFOKind = "episodedetails"
	NFOMovie   NFOKind = "movie"
)

// Metadata is what lands in the NFO sidecar next to a downloaded
// video. Jellyfin and Kodi read title/studio/runtime; the <id> element
// is how extrarr recognizes videos it already fetched.
type Metadata struct {
	Title    string
	Channel  string
	Uploader string
	VideoID  string
	URL      string
	Duration int // seconds
}

type nfoDoc struct {
	XMLName       xml.Name
	Title         string `xml:"title"`
	OriginalTitle string `xml:"originaltitle"`
	Studio        string `xml:"studio"`
	Director      string `xml:"director"`
	Source        string `xml:"source"`
	ID            string `xml:"id"`
	YouTubeURL    string `xml:"youtubeurl"`
	Runtime       int    `xml:"runtime,omitempty"`
}

// WriteNFO creates <dir>/<base>.nfo describing a downloaded video.
// Runtime is minutes, omitted when the duration is unknown.
func WriteNFO(dir, base string, kind NFOKind, meta Metadata) error {
	doc := nfoDoc{
		XMLName:       xml.Name{Local: string(kind)},
		Title:         meta.Title,
		OriginalTitle: meta.Title,
		Studio:        meta.Channel,
		Director:      meta.Uploader,
		Source:        "YouTube",
		ID:            meta.VideoID,
		YouTubeURL:    meta.URL,
		Runtime:       meta.Duration / 60,
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding nfo: %w", err)
	}

	content := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" + string(body) + "\n"
	path := filepath.Join(dir, base+".nfo")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing nfo: %w", err)
	}
	return nil
}

var nfoIDPattern = regexp.MustCompile(`<id>([^<]+)</id>`)

// ExistingVideoIDs scans a directory's NFO files for YouTube video IDs
// so already-downloaded videos are skipped on later runs. A missing
// directory means nothing has been downloaded yet.
func ExistingVideoIDs(dir string) (map[string]bool, error) {
	ids := make(map[string]bool)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ids, nil
		}
		return nil, fmt.Errorf("reading nfo directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".nfo") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		if m := nfoIDPattern.FindSubmatch(content); m != nil {
			if id := strings.TrimSpace(string(m[1])); id != "" {
				ids[id] = true
			}
		}
	}
	return ids, nil
}
