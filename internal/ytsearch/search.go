// Package ytsearch runs YouTube searches through yt-dlp and converts
// the results into scoring candidates.
package ytsearch

import (
	"context"
	"fmt"

	"github.com/Nomadcxx/extrarr/internal/scoring"
	"github.com/lrstanley/go-ytdlp"
)

// Searcher issues ytsearchN: queries via yt-dlp's single-JSON dump.
type Searcher struct {
	// Results requested per query.
	Limit int
}

func NewSearcher(limit int) *Searcher {
	if limit < 1 {
		limit = 20
	}
	return &Searcher{Limit: limit}
}

// Search runs one YouTube search and returns the parsed candidates.
// Metadata comes from the flat search page, so some entries may lack
// duration or view counts; the scorer handles those as unknown.
func (s *Searcher) Search(ctx context.Context, query string) ([]scoring.Candidate, error) {
	cmd := ytdlp.New().
		DumpSingleJSON().
		NoWarnings().
		SkipDownload().
		IgnoreErrors()

	result, err := cmd.Run(ctx, fmt.Sprintf("ytsearch%d:%s", s.Limit, query))
	if err != nil {
		return nil, fmt.Errorf("yt-dlp search %q: %w", query, err)
	}

	return ParseSearchResult([]byte(result.Stdout))
}
