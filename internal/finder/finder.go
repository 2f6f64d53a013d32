// Package finder orchestrates a scan: tagged media from Sonarr/Radarr,
// YouTube searches, scoring, and downloads into the library.
package finder

import (
	"context"
	"fmt"
	"time"

	"github.com/Nomadcxx/extrarr/internal/config"
	"github.com/Nomadcxx/extrarr/internal/download"
	"github.com/Nomadcxx/extrarr/internal/history"
	"github.com/Nomadcxx/extrarr/internal/logging"
	"github.com/Nomadcxx/extrarr/internal/radarr"
	"github.com/Nomadcxx/extrarr/internal/scoring"
	"github.com/Nomadcxx/extrarr/internal/sonarr"
)

// SeriesSource is the slice of the Sonarr client the finder needs.
type SeriesSource interface {
	GetTaggedSeries(label string) ([]sonarr.Series, error)
	GetMissingSpecials(seriesID int) ([]sonarr.Episode, error)
	RescanSeries(seriesID int) (*sonarr.CommandResponse, error)
}

// MovieSource is the slice of the Radarr client the finder needs.
type MovieSource interface {
	GetTaggedMovies(label string) ([]radarr.Movie, error)
	RescanMovie(movieID int) (*radarr.CommandResponse, error)
}

// Searcher produces scoring candidates for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]scoring.Candidate, error)
}

// Downloader fetches a video into a directory.
type Downloader interface {
	Download(ctx context.Context, url, dir, base string) (string, error)
}

// Refresher triggers a media server library refresh.
type Refresher interface {
	RefreshLibrary() error
}

// HistoryStore remembers past downloads.
type HistoryStore interface {
	Has(videoID string) (bool, error)
	Record(d *history.Download) error
}

// Deps bundles the finder's collaborators. Series, Movies, and
// Jellyfin may be nil when the corresponding integration is disabled.
type Deps struct {
	Series   SeriesSource
	Movies   MovieSource
	Search   Searcher
	Download Downloader
	Jellyfin Refresher
	History  HistoryStore
}

// Finder runs scans.
type Finder struct {
	cfg    *config.Config
	engine *scoring.Engine
	log    *logging.Logger
	deps   Deps
}

// Report summarizes one scan run.
type Report struct {
	SeriesScanned int
	MoviesScanned int
	Queries       int
	Downloaded    int
	// Downloads a dry run would have performed.
	Planned  int
	Skipped  int
	Failures int
}

func (r Report) String() string {
	return fmt.Sprintf("series=%d movies=%d queries=%d downloaded=%d planned=%d skipped=%d failures=%d",
		r.SeriesScanned, r.MoviesScanned, r.Queries, r.Downloaded, r.Planned, r.Skipped, r.Failures)
}

// New builds a finder. The scoring engine is constructed once from the
// configured options, so an invalid scoring config fails here.
func New(cfg *config.Config, log *logging.Logger, deps Deps) (*Finder, error) {
	engine, err := scoring.NewEngine(cfg.Scoring)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Finder{cfg: cfg, engine: engine, log: log, deps: deps}, nil
}

// Run scans all enabled sources and returns a report. Individual item
// failures are logged and counted, not fatal: one broken series should
// not stop the rest of the library.
func (f *Finder) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	if f.cfg.Sonarr.Enabled && f.deps.Series != nil {
		if err := f.runSeries(ctx, report); err != nil {
			return report, err
		}
	}
	if f.cfg.Radarr.Enabled && f.deps.Movies != nil {
		if err := f.runMovies(ctx, report); err != nil {
			return report, err
		}
	}

	if report.Downloaded > 0 && f.deps.Jellyfin != nil {
		if err := f.deps.Jellyfin.RefreshLibrary(); err != nil {
			f.log.Warn("finder", "jellyfin refresh failed", logging.F("error", err.Error()))
		} else {
			f.log.Info("finder", "jellyfin library refresh triggered")
		}
	}

	f.log.Info("finder", "scan complete", logging.F("report", report.String()))
	return report, nil
}

// evaluate runs one search query through the scoring pipeline.
func (f *Finder) evaluate(ctx context.Context, query string, target scoring.Target, mode scoring.Mode, report *Report) ([]scoring.Scored, error) {
	report.Queries++
	candidates, err := f.deps.Search.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	result := f.engine.Evaluate(target, candidates, mode)
	f.log.Debug("finder", "query evaluated",
		logging.F("query", query),
		logging.F("candidates", len(candidates)),
		logging.F("selected", len(result.Selected)))

	if f.cfg.Options.DryRun {
		for _, s := range result.Selected {
			f.logBreakdown(s)
		}
	}
	return result.Selected, nil
}

func (f *Finder) logBreakdown(s scoring.Scored) {
	fields := []logging.Field{
		logging.F("video", s.Candidate.ID),
		logging.F("title", s.Candidate.Title),
		logging.F("total", s.Total),
	}
	for _, e := range s.Breakdown {
		fields = append(fields, logging.F(e.Label, e.Points))
	}
	f.log.Info("finder", "score breakdown", fields...)
}

// fetch downloads one selected video, writes its NFO sidecar, and
// records it in history. Returns true when a file actually landed.
func (f *Finder) fetch(ctx context.Context, sel scoring.Scored, dir, base string, kind download.NFOKind,
	mediaType string, mediaID int, mediaTitle string, report *Report) bool {

	c := sel.Candidate

	if done, err := f.deps.History.Has(c.ID); err != nil {
		f.log.Warn("finder", "history lookup failed", logging.F("video", c.ID), logging.F("error", err.Error()))
	} else if done {
		report.Skipped++
		return false
	}

	if f.cfg.Options.DryRun {
		f.log.Info("finder", "dry run: would download",
			logging.F("video", c.ID),
			logging.F("title", c.Title),
			logging.F("score", sel.Total),
			logging.F("dest", dir))
		report.Planned++
		return false
	}

	path, err := f.deps.Download.Download(ctx, c.URL, dir, base)
	if err != nil {
		f.log.Error("finder", "download failed", err, logging.F("video", c.ID))
		report.Failures++
		return false
	}

	meta := download.Metadata{
		Title:    c.Title,
		Channel:  c.Channel,
		Uploader: c.Channel,
		VideoID:  c.ID,
		URL:      c.URL,
		Duration: c.Duration,
	}
	if err := f.writeNFO(dir, base, kind, meta); err != nil {
		// The video is in place; a missing sidecar only costs metadata.
		f.log.Warn("finder", "nfo write failed", logging.F("video", c.ID), logging.F("error", err.Error()))
	}

	if err := f.deps.History.Record(&history.Download{
		VideoID:    c.ID,
		Title:      c.Title,
		Channel:    c.Channel,
		URL:        c.URL,
		Score:      sel.Total,
		MediaType:  mediaType,
		MediaID:    mediaID,
		MediaTitle: mediaTitle,
		Path:       path,
	}); err != nil {
		f.log.Warn("finder", "history record failed", logging.F("video", c.ID), logging.F("error", err.Error()))
	}

	f.log.Info("finder", "downloaded",
		logging.F("video", c.ID),
		logging.F("title", c.Title),
		logging.F("score", sel.Total),
		logging.F("path", path))
	report.Downloaded++
	return true
}

// writeNFO is indirect so tests can run fetch against a temp layout.
func (f *Finder) writeNFO(dir, base string, kind download.NFOKind, meta download.Metadata) error {
	return download.WriteNFO(dir, base, kind, meta)
}

// parseDate accepts the date shapes the *arr APIs emit: RFC3339
// timestamps or plain YYYY-MM-DD. Anything else is unknown.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
