package scoring

import "fmt"

// Engine evaluates candidates against a target using a fixed Options
// snapshot. It is stateless between calls and safe for concurrent use.
type Engine struct {
	opts Options

	// Normalized copies of the configured lists, prepared once.
	positiveKeywords  []string
	negativeKeywords  []string
	trailerKeywords   []string
	knownChannels     []string
	unrelatedChannels []string
	stopWords         map[string]struct{}
}

// NewEngine validates the options and prepares an engine. A configuration
// error here is the only failure mode the package has; scoring itself
// never returns errors.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring options: %w", err)
	}
	return &Engine{
		opts:              opts,
		positiveKeywords:  normalizeAll(opts.Lists.PositiveKeywords),
		negativeKeywords:  normalizeAll(opts.Lists.NegativeKeywords),
		trailerKeywords:   normalizeAll(opts.Lists.TrailerKeywords),
		knownChannels:     normalizeAll(opts.Lists.KnownChannels),
		unrelatedChannels: normalizeAll(opts.Lists.UnrelatedChannels),
		stopWords:         stopWordSet(opts.Lists.StopWords),
	}, nil
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Options returns a copy of the engine's configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Score runs every extractor exactly once for the pair and returns the
// candidate annotated with its breakdown. Absent candidate fields
// contribute zero from the affected extractors, never an error.
func (e *Engine) Score(t Target, c Candidate, m Mode) Scored {
	tv := newTargetView(t)
	return e.score(&tv, c, m)
}

func (e *Engine) score(tv *targetView, c Candidate, m Mode) Scored {
	cv := newCandidateView(c)
	var breakdown Breakdown
	for _, ex := range extractors() {
		breakdown = append(breakdown, ex(e, m, tv, &cv)...)
	}
	return Scored{Candidate: c, Breakdown: breakdown, Total: breakdown.Total()}
}

// ScoreAll scores every candidate, preserving input order. The target is
// normalized once for the whole batch.
func (e *Engine) ScoreAll(t Target, candidates []Candidate, m Mode) []Scored {
	tv := newTargetView(t)
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, e.score(&tv, c, m))
	}
	return scored
}

// Admit keeps candidates whose total score meets the threshold. The
// filter is stable: input order is preserved.
func (e *Engine) Admit(scored []Scored, threshold float64) []Scored {
	admitted := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if s.Total >= threshold {
			admitted = append(admitted, s)
		}
	}
	return admitted
}

// Evaluate runs the full pipeline: score, admit, collapse duplicates,
// select. An empty candidate list yields an empty selection.
func (e *Engine) Evaluate(t Target, candidates []Candidate, m Mode) Result {
	scored := e.ScoreAll(t, candidates, m)
	admitted := e.Admit(scored, e.opts.Threshold(m))
	representatives := e.Cluster(admitted)
	return Result{
		Selected: e.Select(representatives, e.opts.Cap(m)),
		Scored:   scored,
	}
}
