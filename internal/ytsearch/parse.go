package ytsearch

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Nomadcxx/extrarr/internal/scoring"
)

// searchResult is the yt-dlp --dump-single-json output for an
// ytsearchN: query (a flat playlist of entries).
type searchResult struct {
	Entries []videoInfo `json:"entries"`
}

// videoInfo mirrors the yt-dlp metadata fields extrarr scores on.
// Missing numeric fields decode to zero, which the scorer treats as
// unknown.
type videoInfo struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Channel    string  `json:"channel"`
	Uploader   string  `json:"uploader"`
	Duration   float64 `json:"duration"`
	ViewCount  int64   `json:"view_count"`
	UploadDate string  `json:"upload_date"` // YYYYMMDD
	Height     int     `json:"height"`
	WebpageURL string  `json:"webpage_url"`
}

// ParseSearchResult converts raw yt-dlp JSON into scoring candidates.
// Entries without an ID or title are dropped; a malformed upload date
// is treated as unknown rather than failing the whole page.
func ParseSearchResult(data []byte) ([]scoring.Candidate, error) {
	var result searchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing search result: %w", err)
	}

	candidates := make([]scoring.Candidate, 0, len(result.Entries))
	for _, e := range result.Entries {
		if strings.TrimSpace(e.ID) == "" || strings.TrimSpace(e.Title) == "" {
			continue
		}
		candidates = append(candidates, toCandidate(e))
	}
	return candidates, nil
}

func toCandidate(v videoInfo) scoring.Candidate {
	channel := v.Channel
	if strings.TrimSpace(channel) == "" {
		channel = v.Uploader
	}

	var uploaded time.Time
	if v.UploadDate != "" {
		if t, err := time.Parse("20060102", v.UploadDate); err == nil {
			uploaded = t
		}
	}

	url := v.WebpageURL
	if url == "" {
		url = "https://www.youtube.com/watch?v=" + v.ID
	}

	return scoring.Candidate{
		ID:         v.ID,
		Title:      v.Title,
		Channel:    channel,
		Duration:   int(v.Duration),
		Views:      v.ViewCount,
		UploadDate: uploaded,
		Height:     v.Height,
		URL:        url,
	}
}
