package scoring

import (
	"fmt"
	"strings"
	"unicode"
)

// targetView and candidateView hold the normalized fields shared by all
// extractors so each candidate is normalized exactly once.
type targetView struct {
	name       string
	nameTokens map[string]struct{}
	secondary  string
	episode    string
	target     Target
}

type candidateView struct {
	rawTitle    string
	title       string
	channel     string
	titleTokens map[string]struct{}
	candidate   Candidate
}

func newTargetView(t Target) targetView {
	return targetView{
		name:       Normalize(t.Name),
		nameTokens: wordTokens(t.Name),
		secondary:  Normalize(t.Secondary),
		episode:    Normalize(t.EpisodeTitle),
		target:     t,
	}
}

func newCandidateView(c Candidate) candidateView {
	return candidateView{
		rawTitle:    c.Title,
		title:       Normalize(c.Title),
		channel:     Normalize(c.Channel),
		titleTokens: wordTokens(c.Title),
		candidate:   c,
	}
}

// An extractor computes zero or more point contributions from one
// candidate attribute. Extractors are independent and order-insensitive;
// none may read another's output.
type extractor func(e *Engine, m Mode, t *targetView, c *candidateView) []Entry

func extractors() []extractor {
	return []extractor{
		extractTitleRelevance,
		extractChannelRelevance,
		extractContentKeywords,
		extractDuration,
		extractPopularity,
		extractRecency,
		extractResolution,
		extractTitleLength,
	}
}

func extractTitleRelevance(e *Engine, _ Mode, t *targetView, c *candidateView) []Entry {
	var entries []Entry
	w := e.opts.Weights

	if t.name != "" && strings.Contains(c.title, t.name) {
		entries = append(entries, Entry{"name match", w.NameMatch})
		if lead := leadingTitle(c.rawTitle, c.title, t.name); lead {
			entries = append(entries, Entry{"foreign title before name", w.LeadingTitle})
		}
	}
	if t.episode != "" && strings.Contains(c.title, t.episode) {
		entries = append(entries, Entry{"episode title match", w.EpisodeMatch})
	}
	if len(t.nameTokens) > 0 && len(c.titleTokens) > 0 {
		if ratio := jaccard(t.nameTokens, c.titleTokens); ratio > 0 {
			entries = append(entries, Entry{"word overlap", ratio * w.WordOverlapMax})
		}
	}
	return entries
}

// leadingTitle reports whether the candidate title carries what looks
// like a different production's title ahead of the target name: two or
// more capitalized words before the first occurrence of the name. This
// guards against videos about another show that mention the target late.
// The name is located on the normalized title so whitespace runs in the
// raw title can't hide it; capitalization is read from the raw words,
// which line up field-for-field with the normalized ones.
func leadingTitle(rawTitle, normTitle, normName string) bool {
	idx := strings.Index(normTitle, normName)
	if idx <= 0 {
		return false
	}
	lead := len(strings.Fields(normTitle[:idx]))
	capitalized := 0
	for _, word := range strings.Fields(rawTitle) {
		if lead == 0 {
			break
		}
		lead--
		runes := []rune(word)
		if len(runes) > 0 && unicode.IsUpper(runes[0]) {
			capitalized++
		}
	}
	return capitalized >= 2
}

func extractChannelRelevance(e *Engine, _ Mode, t *targetView, c *candidateView) []Entry {
	var entries []Entry
	w := e.opts.Weights

	if t.secondary != "" && c.channel != "" {
		// Either direction: "HBO" inside "HBO Max Official", or channel
		// "Apple TV" inside network "Apple TV+".
		if strings.Contains(c.channel, t.secondary) || strings.Contains(t.secondary, c.channel) {
			entries = append(entries, Entry{"network channel match", w.NetworkChannel})
		}
	}
	if c.channel != "" {
		for _, known := range e.knownChannels {
			if strings.Contains(c.channel, known) {
				entries = append(entries, Entry{"known channel", w.KnownChannel})
				break
			}
		}
		for _, unrelated := range e.unrelatedChannels {
			if strings.Contains(c.channel, unrelated) {
				entries = append(entries, Entry{"unrelated channel type", w.UnrelatedChannel})
				break
			}
		}
	}
	return entries
}

func extractContentKeywords(e *Engine, _ Mode, _ *targetView, c *candidateView) []Entry {
	var entries []Entry
	w := e.opts.Weights

	positive := false
	for _, kw := range e.positiveKeywords {
		if strings.Contains(c.title, kw) {
			entries = append(entries, Entry{fmt.Sprintf("keyword %q", kw), w.PositiveKeyword})
			positive = true
		}
	}
	for _, kw := range e.negativeKeywords {
		if strings.Contains(c.title, kw) {
			entries = append(entries, Entry{fmt.Sprintf("keyword %q", kw), w.NegativeKeyword})
		}
	}
	if !positive {
		// Trailers are disproportionately mis-scored by title bonuses
		// alone, so a trailer with no BTS wording is penalized extra.
		for _, kw := range e.trailerKeywords {
			if strings.Contains(c.title, kw) {
				entries = append(entries, Entry{"trailer without extras content", w.BareTrailer})
				break
			}
		}
	}
	return entries
}

func extractDuration(e *Engine, m Mode, _ *targetView, c *candidateView) []Entry {
	d := c.candidate.Duration
	if d <= 0 {
		return nil
	}
	w := e.opts.Weights
	band := e.opts.band(m)
	switch {
	case d < band.ShortFloor:
		return []Entry{{"duration too short", w.DurationTooShort}}
	case d > band.LongCeiling:
		return []Entry{{"duration too long", w.DurationTooLong}}
	case d >= band.BonusMin && d <= band.BonusMax:
		return []Entry{{"duration in band", w.DurationInBand}}
	}
	return nil
}

func extractPopularity(e *Engine, _ Mode, _ *targetView, c *candidateView) []Entry {
	views := c.candidate.Views
	w := e.opts.Weights
	var pts float64
	switch {
	case views >= 1_000_000:
		pts = w.Views1M
	case views >= 500_000:
		pts = w.Views500K
	case views >= 100_000:
		pts = w.Views100K
	case views >= 50_000:
		pts = w.Views50K
	case views >= 10_000:
		pts = w.Views10K
	default:
		return nil
	}
	return []Entry{{"view count", pts}}
}

func extractRecency(e *Engine, _ Mode, t *targetView, c *candidateView) []Entry {
	ref := t.target.ReferenceDate
	up := c.candidate.UploadDate
	if ref.IsZero() || up.IsZero() {
		return nil
	}
	days := up.Sub(ref).Hours() / 24
	if days < 0 {
		days = -days
	}
	w := e.opts.Weights
	switch {
	case days <= 30:
		return []Entry{{"uploaded within 30 days", w.Recency30}}
	case days <= 90:
		return []Entry{{"uploaded within 90 days", w.Recency90}}
	case days <= 365:
		return []Entry{{"uploaded within a year", w.Recency365}}
	}
	return nil
}

func extractResolution(e *Engine, _ Mode, _ *targetView, c *candidateView) []Entry {
	h := c.candidate.Height
	if h <= 0 {
		return nil
	}
	w := e.opts.Weights
	switch {
	case h >= 1080:
		return []Entry{{"resolution 1080p+", w.Res1080}}
	case h >= 720:
		return []Entry{{"resolution 720p", w.Res720}}
	case h >= 480:
		return []Entry{{"resolution 480p", w.Res480}}
	case h < 360:
		return []Entry{{"resolution below 360p", w.ResSub360}}
	}
	return nil
}

// extractTitleLength favors short titles, which are less likely to be
// multi-topic compilations. Long titles are never penalized here; the
// keyword and duration signals already cover that.
func extractTitleLength(e *Engine, _ Mode, _ *targetView, c *candidateView) []Entry {
	limit := e.opts.ShortTitleChars
	n := len([]rune(c.rawTitle))
	if n == 0 || n >= limit {
		return nil
	}
	scale := 1 - float64(n)/float64(limit)
	return []Entry{{"short title", e.opts.Weights.ShortTitleMax * scale}}
}
