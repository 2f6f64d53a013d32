package finder

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Nomadcxx/extrarr/internal/download"
	"github.com/Nomadcxx/extrarr/internal/logging"
	"github.com/Nomadcxx/extrarr/internal/scoring"
	"github.com/Nomadcxx/extrarr/internal/sonarr"
)

func (f *Finder) runSeries(ctx context.Context, report *Report) error {
	series, err := f.deps.Series.GetTaggedSeries(f.cfg.Sonarr.Tag)
	if err != nil {
		return fmt.Errorf("listing tagged series: %w", err)
	}
	f.log.Info("finder", "scanning series", logging.F("count", len(series)))

	for _, s := range series {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.SeriesScanned++
		downloaded := f.processSeries(ctx, s, report)
		if downloaded && !f.cfg.Options.DryRun {
			if _, err := f.deps.Series.RescanSeries(s.ID); err != nil {
				f.log.Warn("finder", "sonarr rescan failed",
					logging.F("series", s.Title), logging.F("error", err.Error()))
			}
		}
	}
	return nil
}

// processSeries hunts missing season-0 specials by exact episode, then
// tops up the extras folder. Returns true when anything was fetched.
func (f *Finder) processSeries(ctx context.Context, s sonarr.Series, report *Report) bool {
	seriesDir := f.cfg.Download.MapPath(s.Path)
	downloaded := false

	specials, err := f.deps.Series.GetMissingSpecials(s.ID)
	if err != nil {
		f.log.Error("finder", "listing specials failed", err, logging.F("series", s.Title))
		report.Failures++
	}

	for _, ep := range specials {
		if ctx.Err() != nil {
			return downloaded
		}
		if f.fetchSpecial(ctx, s, ep, seriesDir, report) {
			downloaded = true
		}
	}

	if f.fetchSeriesExtras(ctx, s, seriesDir, report) {
		downloaded = true
	}
	return downloaded
}

func (f *Finder) fetchSpecial(ctx context.Context, s sonarr.Series, ep sonarr.Episode, seriesDir string, report *Report) bool {
	target := scoring.Target{
		Name:         s.Title,
		Secondary:    s.Network,
		EpisodeTitle: ep.Title,
	}
	if ep.AirDateUtc != nil {
		target.ReferenceDate = *ep.AirDateUtc
	} else {
		target.ReferenceDate = parseDate(ep.AirDate)
	}

	query := fmt.Sprintf("%s %s", s.Title, ep.Title)
	selected, err := f.evaluate(ctx, query, target, scoring.ModeEpisode, report)
	if err != nil {
		f.log.Error("finder", "special search failed", err, logging.F("series", s.Title))
		report.Failures++
		return false
	}
	if len(selected) == 0 {
		f.log.Debug("finder", "no acceptable match for special",
			logging.F("series", s.Title),
			logging.F("episode", fmt.Sprintf("S%02dE%02d", ep.SeasonNumber, ep.EpisodeNumber)))
		return false
	}

	base := download.EpisodeFilename(s.Title, ep.SeasonNumber, ep.EpisodeNumber, ep.Title)
	dir := filepath.Join(seriesDir, "Specials")
	return f.fetch(ctx, selected[0], dir, base, download.NFOEpisode, "series", s.ID, s.Title, report)
}

func (f *Finder) fetchSeriesExtras(ctx context.Context, s sonarr.Series, seriesDir string, report *Report) bool {
	target := scoring.Target{
		Name:          s.Title,
		Secondary:     s.Network,
		ReferenceDate: parseDate(s.FirstAired),
	}

	query := fmt.Sprintf("%s %s", s.Title, f.cfg.Search.ExtrasSuffix)
	selected, err := f.evaluate(ctx, query, target, scoring.ModeExtras, report)
	if err != nil {
		f.log.Error("finder", "extras search failed", err, logging.F("series", s.Title))
		report.Failures++
		return false
	}

	dir := filepath.Join(seriesDir, f.cfg.Download.ExtrasDir)
	existing, err := download.ExistingVideoIDs(dir)
	if err != nil {
		f.log.Warn("finder", "reading existing extras failed", logging.F("error", err.Error()))
		existing = map[string]bool{}
	}

	downloaded := false
	for _, sel := range selected {
		if ctx.Err() != nil {
			return downloaded
		}
		if existing[sel.Candidate.ID] {
			report.Skipped++
			continue
		}
		base := download.ExtrasFilename(s.Title, sel.Candidate.Title)
		if f.fetch(ctx, sel, dir, base, download.NFOMovie, "series", s.ID, s.Title, report) {
			downloaded = true
		}
	}
	return downloaded
}
