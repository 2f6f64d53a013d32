package finder

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Nomadcxx/extrarr/internal/download"
	"github.com/Nomadcxx/extrarr/internal/logging"
	"github.com/Nomadcxx/extrarr/internal/radarr"
	"github.com/Nomadcxx/extrarr/internal/scoring"
)

func (f *Finder) runMovies(ctx context.Context, report *Report) error {
	movies, err := f.deps.Movies.GetTaggedMovies(f.cfg.Radarr.Tag)
	if err != nil {
		return fmt.Errorf("listing tagged movies: %w", err)
	}
	f.log.Info("finder", "scanning movies", logging.F("count", len(movies)))

	for _, m := range movies {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.MoviesScanned++
		if f.processMovie(ctx, m, report) && !f.cfg.Options.DryRun {
			if _, err := f.deps.Movies.RescanMovie(m.ID); err != nil {
				f.log.Warn("finder", "radarr rescan failed",
					logging.F("movie", m.Title), logging.F("error", err.Error()))
			}
		}
	}
	return nil
}

// processMovie tops up a movie's extras folder. Returns true when
// anything was fetched.
func (f *Finder) processMovie(ctx context.Context, m radarr.Movie, report *Report) bool {
	target := scoring.Target{
		Name:          m.Title,
		Secondary:     m.Studio,
		ReferenceDate: movieReleaseDate(m),
	}

	query := fmt.Sprintf("%s %s", m.Title, f.cfg.Search.ExtrasSuffix)
	selected, err := f.evaluate(ctx, query, target, scoring.ModeExtras, report)
	if err != nil {
		f.log.Error("finder", "extras search failed", err, logging.F("movie", m.Title))
		report.Failures++
		return false
	}

	dir := filepath.Join(f.cfg.Download.MapPath(m.Path), f.cfg.Download.ExtrasDir)
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
		base := download.ExtrasFilename(m.Title, sel.Candidate.Title)
		if f.fetch(ctx, sel, dir, base, download.NFOMovie, "movie", m.ID, m.Title, report) {
			downloaded = true
		}
	}
	return downloaded
}

// movieReleaseDate picks the earliest known release for recency
// scoring: cinema first, then digital, then physical.
func movieReleaseDate(m radarr.Movie) time.Time {
	for _, s := range []string{m.InCinemas, m.DigitalRelease, m.PhysicalRelease} {
		if t := parseDate(s); !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}
