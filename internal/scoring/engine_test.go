package scoring

import (
	"math"
	"testing"
	"time"
)

func TestNewEngineValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults are valid", func(o *Options) {}, false},
		{"negative similarity ratio", func(o *Options) { o.SimilarityRatio = -0.1 }, true},
		{"ratio above one", func(o *Options) { o.SimilarityRatio = 1.5 }, true},
		{"NaN threshold", func(o *Options) { o.MinScoreExtras = math.NaN() }, true},
		{"infinite threshold", func(o *Options) { o.MinScoreEpisode = math.Inf(1) }, true},
		{"negative duration tolerance", func(o *Options) { o.DurationToleranceSec = -1 }, true},
		{"relative tolerance above one", func(o *Options) { o.DurationTolerancePct = 2 }, true},
		{"zero cap", func(o *Options) { o.MaxExtras = 0 }, true},
		{"inverted bonus band", func(o *Options) { o.ExtrasBand.BonusMin = 100; o.ExtrasBand.BonusMax = 50 }, true},
		{"ceiling below floor", func(o *Options) { o.EpisodeBand.ShortFloor = 100; o.EpisodeBand.LongCeiling = 50 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := NewEngine(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewEngine error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTotalEqualsBreakdownSum(t *testing.T) {
	e := testEngine(t)
	target := Target{
		Name:          "Breaking Bad",
		Secondary:     "AMC",
		EpisodeTitle:  "Pilot",
		ReferenceDate: time.Date(2008, 1, 20, 0, 0, 0, 0, time.UTC),
	}
	candidates := []Candidate{
		{Title: "Breaking Bad: Pilot - Full Episode (Official HD)", Channel: "AMC", Duration: 2820, Views: 3_500_000, Height: 1080},
		{Title: "Breaking Bad Pilot Scene Compilation", Duration: 2100, Views: 150_000, Height: 720},
		{Title: "completely unrelated gardening video"},
		{},
	}
	for _, c := range candidates {
		s := e.Score(target, c, ModeExtras)
		if s.Total != s.Breakdown.Total() {
			t.Errorf("candidate %q: Total %v != sum %v", c.Title, s.Total, s.Breakdown.Total())
		}
	}
}

func TestMissingFieldsAreNotErrors(t *testing.T) {
	e := testEngine(t)
	// A candidate with every optional field absent still scores.
	s := e.Score(Target{Name: "Foundation"}, Candidate{Title: "Foundation behind the scenes"}, ModeExtras)
	if s.Total <= 0 {
		t.Errorf("bare candidate should still earn title points, got %v", s.Total)
	}
	for _, label := range []string{"duration in band", "view count", "resolution 1080p+"} {
		if _, ok := entryPoints(s.Breakdown, label); ok {
			t.Errorf("absent field produced entry %q", label)
		}
	}
}

func TestAdmitIsStableAndThresholded(t *testing.T) {
	e := testEngine(t)
	scored := []Scored{
		{Candidate: Candidate{ID: "a"}, Total: 80},
		{Candidate: Candidate{ID: "b"}, Total: 64.9},
		{Candidate: Candidate{ID: "c"}, Total: 65},
		{Candidate: Candidate{ID: "d"}, Total: -10},
		{Candidate: Candidate{ID: "e"}, Total: 200},
	}
	got := e.Admit(scored, 65)
	wantIDs := []string{"a", "c", "e"}
	if len(got) != len(wantIDs) {
		t.Fatalf("admitted %d, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].Candidate.ID != id {
			t.Errorf("admitted[%d] = %q, want %q (order must be preserved)", i, got[i].Candidate.ID, id)
		}
	}
}

func TestAdmissionMonotonic(t *testing.T) {
	e := testEngine(t)
	scored := []Scored{
		{Total: -50}, {Total: 0}, {Total: 30}, {Total: 65}, {Total: 90}, {Total: 120},
	}
	thresholds := []float64{-100, 0, 50, 65, 100, 500}
	prev := len(scored) + 1
	for _, th := range thresholds {
		n := len(e.Admit(scored, th))
		if n > prev {
			t.Errorf("raising threshold to %v grew the admitted set (%d > %d)", th, n, prev)
		}
		prev = n
	}
}

func TestEvaluateEmptyInput(t *testing.T) {
	e := testEngine(t)
	res := e.Evaluate(Target{Name: "Foundation"}, nil, ModeExtras)
	if len(res.Selected) != 0 || len(res.Scored) != 0 {
		t.Errorf("empty input must yield empty result, got %+v", res)
	}
}

// The additive model is deliberate: a strong exact-title bonus can
// outscore a content-type penalty, so a popular review video may still
// clear the bar. Documented heuristic limit, not a bug.
func TestReviewVideoCanOutscorePenalty(t *testing.T) {
	e := testEngine(t)
	target := Target{Name: "Breaking Bad", EpisodeTitle: "Pilot"}
	s := e.Score(target, Candidate{Title: "Breaking Bad Pilot Review"}, ModeExtras)
	if _, ok := entryPoints(s.Breakdown, `keyword "review"`); !ok {
		t.Fatalf("review keyword penalty missing from %v", s.Breakdown)
	}
	if s.Total < e.Options().MinScoreExtras {
		t.Errorf("expected the title bonuses to outscore the review penalty, got %v", s.Total)
	}
}
