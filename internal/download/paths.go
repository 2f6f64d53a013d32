// Package download places scored videos into the media library:
// yt-dlp downloads, Jellyfin-compatible filenames, and NFO sidecars.
package download

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// SanitizeFilename strips characters that are invalid on common
// filesystems and collapses runs of whitespace.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			// drop
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// cleanTitle sanitizes a video title for use in a filename. Titles
// that arrive all-caps or all-lowercase get re-cased for the library
// listing; mixed-case titles are kept as the uploader wrote them.
func cleanTitle(title string) string {
	title = SanitizeFilename(title)
	if title == "" {
		return title
	}
	if title == strings.ToUpper(title) || title == strings.ToLower(title) {
		return titleCaser.String(strings.ToLower(title))
	}
	return title
}

// EpisodeFilename builds the Jellyfin specials filename, without
// extension: "Series - S00E05 - Episode Title".
func EpisodeFilename(series string, season, episode int, title string) string {
	return fmt.Sprintf("%s - S%02dE%02d - %s",
		SanitizeFilename(series), season, episode, cleanTitle(title))
}

// ExtrasFilename builds a movie/series extras filename, without
// extension: "Movie - Video Title".
func ExtrasFilename(mediaTitle, videoTitle string) string {
	return fmt.Sprintf("%s - %s", SanitizeFilename(mediaTitle), cleanTitle(videoTitle))
}
